package temporary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration 将时长格式化为 H:MM:SS 字符串
// 负值按 0 处理，秒以下的小数部分截断
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// ParseFlexibleDuration 解析时长字段
// 同时接受 H:MM:SS 字符串和纯数字秒数（"90"、"90.5"）两种形式
// 无法解析的值按 0 处理，不报错（快照字段容错）
func ParseFlexibleDuration(val string) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if strings.Contains(val, ":") {
		return parseClock(val)
	}
	seconds, err := strconv.ParseFloat(val, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// parseClock 解析 H:MM:SS 字符串，格式错误返回 0
func parseClock(val string) time.Duration {
	parts := strings.Split(val, ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0
	}
	total := hours*3600 + minutes*60 + seconds
	if total < 0 {
		return 0
	}
	return time.Duration(total) * time.Second
}

// parseTime 解析 RFC3339 时间戳，失败返回零值
func parseTime(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
