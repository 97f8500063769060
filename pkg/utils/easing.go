package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（弹性缓动会短暂越过 1）。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（比 Cubic 更柔和）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutElastic 弹性缓出
// 特点：快速冲过终点后来回摆动并收敛，适合靶子"啪"地倒下/弹起
//
// period 为摆动周期，越小摆动越密。公式（period = p）：
//
//	f(t) = 1 - easeIn(1-t)
//	easeIn(t) = -2^(10(t-1)) · sin(((t-1) - p/4) · 2π / p)
func EaseOutElastic(t, period float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if period <= 0 {
		period = 0.3
	}
	return 1 - easeInElastic(1-t, period)
}

func easeInElastic(t, p float64) float64 {
	if t <= 0 || t >= 1 {
		return t
	}
	s := p / (2 * math.Pi) * math.Asin(1)
	return -math.Pow(2, 10*(t-1)) * math.Sin((t-1-s)*(2*math.Pi)/p)
}

// ElasticityToPeriod 将弹性系数（0~1000，越大越弹）转换为摆动周期
// 弹性 800 对应周期 0.2
func ElasticityToPeriod(elasticity float64) float64 {
	return 1 - math.Min(elasticity, 999)/1000
}

// EasingByName 根据配置名称返回缓动函数
// elasticity 仅对 easeOutElastic 生效
func EasingByName(name string, elasticity float64) (EasingFunc, error) {
	switch name {
	case "", "linear":
		return EaseLinear, nil
	case "easeOutCubic":
		return EaseOutCubic, nil
	case "easeOutQuad":
		return EaseOutQuad, nil
	case "easeOutElastic":
		period := ElasticityToPeriod(elasticity)
		return func(t float64) float64 { return EaseOutElastic(t, period) }, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
