package util

import (
	"os"
)

// FileExists 检查文件是否存在且不是目录
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
