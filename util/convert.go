package util

import (
	"strconv"
	"strings"
)

// StringToIntDefault 将字符串转换为整数，如果为空或转换失败则返回默认值
func StringToIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// ClampInt 将整数限制在[lo, hi]范围内
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
