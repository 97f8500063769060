// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供世界坐标与屏幕坐标的转换。
//
// # 坐标系统概述
//
//   - **世界坐标**：X 向右，Y 向上，地面为 Y=0，单位为"米"
//   - **屏幕坐标**：相对于游戏窗口左上角，Y 向下，单位为像素
//
// # 核心转换公式
//
//	screenX = CenterX + worldX * PixelsPerUnit
//	screenY = HorizonY - worldY * PixelsPerUnit
//
// Z 只决定绘制顺序和凝视命中优先级，不参与投影。
package utils

// Camera 正交摄像机参数
type Camera struct {
	PixelsPerUnit float64 // 1 个世界单位对应的像素
	HorizonY      float64 // 地面在屏幕上的像素行
	CenterX       float64 // 世界 X=0 在屏幕上的像素列
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (c Camera) WorldToScreen(worldX, worldY float64) (float64, float64) {
	return c.CenterX + worldX*c.PixelsPerUnit, c.HorizonY - worldY*c.PixelsPerUnit
}

// ScreenToWorld 屏幕坐标 → 世界坐标
func (c Camera) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	if c.PixelsPerUnit == 0 {
		return 0, 0
	}
	return (screenX - c.CenterX) / c.PixelsPerUnit, (c.HorizonY - screenY) / c.PixelsPerUnit
}

// WorldLength 世界长度 → 像素长度
func (c Camera) WorldLength(length float64) float64 {
	return length * c.PixelsPerUnit
}
