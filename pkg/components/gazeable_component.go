package components

// GazeableComponent 标记实体可以被凝视（准星悬停即触发）
//
// 命中区域为以实体 X 为中心、宽 Width 的矩形，
// 垂直范围 [Y+OffsetY, Y+OffsetY+Height]（世界坐标）。
// 实体 Y 低于地面时不可被凝视，这也是"藏到地下"能禁用交互的原因。
type GazeableComponent struct {
	Width   float64
	Height  float64
	OffsetY float64
}
