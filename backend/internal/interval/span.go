package interval

import (
	"sort"
	"time"
)

// Span 半开时间区间 [Start, End)
// End 为 nil 表示开放区间（进行中），视为延伸到正无穷
type Span struct {
	Start time.Time
	End   *time.Time
}

// Intersects 判断两个半开区间是否相交
// 相交条件：aStart < bEnd && bStart < aEnd，缺失的 End 按 +∞ 处理。
// 首尾相接（a.End == b.Start）不算相交
func Intersects(a, b Span) bool {
	if a.End != nil && !b.Start.Before(*a.End) {
		return false
	}
	if b.End != nil && !a.Start.Before(*b.End) {
		return false
	}
	return true
}

// Covers 判断候选区间 [start, end) 是否被 spans 的并集无缝覆盖
// 扫描线算法：按起点排序后推进游标；出现缺口立即失败。
// 部分重叠不等于覆盖，必须完整包含
func Covers(start, end time.Time, spans []Span) bool {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	cursor := start
	for _, s := range sorted {
		// 在游标之前（含）结束的区间对覆盖无贡献
		if s.End != nil && !s.End.After(cursor) {
			continue
		}
		// 起点在游标之后：出现缺口
		if s.Start.After(cursor) {
			return false
		}
		// 开放区间覆盖到正无穷
		if s.End == nil {
			return true
		}
		if s.End.After(cursor) {
			cursor = *s.End
		}
		if !cursor.Before(end) {
			return true
		}
	}
	return !cursor.Before(end)
}
