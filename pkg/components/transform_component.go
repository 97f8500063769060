package components

// TransformComponent 实体在世界中的位置和旋转
//
// 坐标约定：
//   - X 向右，Y 向上（地面为 Y=0），Z 越小越远
//   - RotationX 绕 X 轴旋转角度（度）。靶子立起为 0，倒下为 -90
type TransformComponent struct {
	X, Y, Z   float64
	RotationX float64
}
