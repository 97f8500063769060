//go:build !android

package utils

// EnsureStorageDir 准备成绩存储目录
// 非 Android 平台由 gdata 自动创建，无需处理
func EnsureStorageDir() error {
	return nil
}
