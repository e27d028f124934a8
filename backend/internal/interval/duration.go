package interval

import (
	"time"

	"github.com/shopspring/decimal"
)

// BreakWindow 每日休息时段配置
// Start/End 是挂钟时间 "HH:MM"，不绑定具体日期，
// 针对区间跨越的每个日历日重新解释一次
type BreakWindow struct {
	Start string
	End   string
	Loc   *time.Location
}

// valid 判断休息时段是否配置完整且可解析
func (b *BreakWindow) valid() bool {
	if b == nil || b.Loc == nil || b.Start == "" || b.End == "" {
		return false
	}
	if _, _, err := parseWallClock(b.Start); err != nil {
		return false
	}
	if _, _, err := parseWallClock(b.End); err != nil {
		return false
	}
	return true
}

var secondsPerHour = decimal.NewFromInt(3600)

// EffectiveHours 计算扣除休息时段后的有效工时（小时，保留 2 位小数，下限 0）
//
// 原始时长 = clockOut - clockIn。配置了休息时段时，针对区间跨越的
// 每个日历日（按配置时区）解析当日的休息发生次：休息结束不晚于休息
// 开始时顺延到次日（处理 23:00–01:00 这类跨夜休息），再扣除工作区间
// 与当日休息发生次的交集。录入错误导致 clockOut 早于 clockIn 时结果
// 钳制为 0，不返回负数
func EffectiveHours(clockIn, clockOut time.Time, bw *BreakWindow) decimal.Decimal {
	if !clockOut.After(clockIn) {
		return decimal.Zero.Round(2)
	}

	totalSec := clockOut.Unix() - clockIn.Unix()
	breakSec := int64(0)

	if bw.valid() {
		loc := bw.Loc
		day := startOfDay(clockIn, loc)
		lastDay := startOfDay(clockOut, loc)

		for !day.After(lastDay) {
			bs, _ := ResolveInstant(day, bw.Start, loc)
			be, _ := ResolveInstant(day, bw.End, loc)
			if !be.After(bs) {
				// 跨夜休息：结束时刻落到次日
				be, _ = ResolveInstant(day.AddDate(0, 0, 1), bw.End, loc)
			}
			breakSec += overlapSeconds(clockIn, clockOut, bs, be)
			day = day.AddDate(0, 0, 1)
		}
	}

	netSec := totalSec - breakSec
	if netSec < 0 {
		netSec = 0
	}
	return decimal.NewFromInt(netSec).Div(secondsPerHour).Round(2)
}

// startOfDay 取 t 在 loc 时区所在日历日的零点
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// overlapSeconds 两个闭开区间交集的秒数，无交集时为 0
func overlapSeconds(aStart, aEnd, bStart, bEnd time.Time) int64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Unix() - start.Unix()
}
