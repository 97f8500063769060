package components

import "github.com/decker502/fastgun/pkg/ecs"

// TargetComponent 可射击靶子
// 立起/倒下状态保存在 StateComponent 的 "up" 标签中
type TargetComponent struct {
	// ReviveSelector 被击中时需要复活的其他靶子（选择器，可为空）
	ReviveSelector string

	// Linked 由 ReviveSelector 解析出的联动靶子，不包含自身
	// 允许互相引用（环），Revive 不会继续扩散
	Linked []ecs.EntityID

	// ScoreRelevant 是否计入胜利条件和射击计数（亡命徒 vs 练习用的鸡）
	ScoreRelevant bool
}
