package components

import "image/color"

// BoardComponent 靶子的视觉表现：一块以底边为轴翻转的木板
// 高度方向随 TransformComponent.RotationX 缩放（cos）
type BoardComponent struct {
	Width   float64 // 世界单位
	Height  float64 // 世界单位
	Color   color.RGBA
	Texture string // 贴图名称（仅用于日志和调试）
}
