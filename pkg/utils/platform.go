//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上（准星来自触摸而不是鼠标）
// 设置环境变量 FASTGUN_MOBILE_EMULATE=1 可在桌面端模拟
func IsMobile() bool {
	return os.Getenv("FASTGUN_MOBILE_EMULATE") == "1"
}
