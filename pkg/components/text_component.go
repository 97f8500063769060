package components

import "image/color"

// TextComponent 文字实体（HUD、标题、按钮、结束语）
// Value 可包含 "\n" 换行
type TextComponent struct {
	Value string
	Color color.RGBA
	Scale float64 // 字体缩放，0 视为 1
}
