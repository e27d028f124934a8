package interval

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolveLocation 解析时区名；非法或为空时回退到 fallback
// 绝不回退到进程本地时区，保证同一输入在任何机器上算出同一结果。
// 返回的 bool 表示是否发生了回退，调用方据此打日志
func ResolveLocation(name string, fallback *time.Location) (*time.Location, bool) {
	if name == "" {
		return fallback, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback, true
	}
	return loc, false
}

// ResolveInstant 把挂钟时间 "HH:MM" 落到 ref 所在日历日（loc 时区）的绝对时刻
func ResolveInstant(ref time.Time, wall string, loc *time.Location) (time.Time, error) {
	hh, mm, err := parseWallClock(wall)
	if err != nil {
		return time.Time{}, err
	}
	local := ref.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hh, mm, 0, 0, loc), nil
}

// parseWallClock 解析 "HH:MM" 挂钟时间
func parseWallClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("挂钟时间格式无效: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("挂钟时间小时无效: %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("挂钟时间分钟无效: %q", s)
	}
	return hour, minute, nil
}
