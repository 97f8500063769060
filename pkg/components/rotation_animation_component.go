package components

// RotationAnimationComponent 靶子翻转动画（进行中）
//
// 生命周期:
//  1. TargetSystem.Shoot/Revive 添加或替换此组件
//  2. TargetSystem.Update 推进 Elapsed 并写入 TransformComponent.RotationX
//  3. 完成后组件被移除（稳定状态下不保留动画数据）
//
// 每个实体同时最多一个动画，新动画直接覆盖旧动画。
type RotationAnimationComponent struct {
	From     float64 // 起始角度（度）
	To       float64 // 目标角度（度）
	Duration float64 // 总时长（秒）
	Elapsed  float64 // 已播放时间（秒）

	// Easing 缓动函数，nil 表示线性
	Easing func(t float64) float64
}

// Progress 返回 [0, 1] 的线性进度
func (a *RotationAnimationComponent) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := a.Elapsed / a.Duration
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// CurrentValue 返回当前插值角度
func (a *RotationAnimationComponent) CurrentValue() float64 {
	p := a.Progress()
	if a.Easing != nil {
		p = a.Easing(p)
	}
	return a.From + (a.To-a.From)*p
}

// IsFinished 动画是否已播放完毕
func (a *RotationAnimationComponent) IsFinished() bool {
	return a.Elapsed >= a.Duration
}
