package components

// VisibilityComponent 控制实体是否被渲染
// 注意：不可见不代表不可交互，凝视检测只看位置（见 GazeSystem）
type VisibilityComponent struct {
	Visible bool
}
