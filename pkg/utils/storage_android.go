//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 准备成绩存储目录
// gdata 在 Android 上写入 /data/data/{package}/，但不会预先创建子目录
func EnsureStorageDir() error {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	pkg := strings.Trim(strings.ReplaceAll(string(data), "\n", ""), "\x00")
	if i := strings.IndexByte(pkg, 0); i >= 0 {
		pkg = pkg[:i]
	}
	if pkg == "" {
		return fmt.Errorf("failed to detect Android package: empty cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return nil
}
