package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GazePoint 返回当前准星所在的屏幕位置
// 优先使用第一个触摸点（移动设备），否则使用鼠标位置（桌面设备）
func GazePoint() (x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
