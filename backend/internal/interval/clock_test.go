package interval

import (
	"testing"
	"time"
)

// ── ResolveLocation 测试 ──

func TestResolveLocation_Valid(t *testing.T) {
	fallback := time.UTC

	loc, fellBack := ResolveLocation("Asia/Shanghai", fallback)
	if fellBack {
		t.Error("合法时区不应回退")
	}
	if loc.String() != "Asia/Shanghai" {
		t.Errorf("期望 Asia/Shanghai，实际=%s", loc)
	}
}

func TestResolveLocation_InvalidFallsBack(t *testing.T) {
	fallback := mustLoc(t, "Asia/Shanghai")

	loc, fellBack := ResolveLocation("Mars/Olympus", fallback)
	if !fellBack {
		t.Error("非法时区应回退到兜底时区")
	}
	if loc != fallback {
		t.Errorf("期望回退到兜底时区，实际=%s", loc)
	}
}

func TestResolveLocation_EmptyFallsBack(t *testing.T) {
	fallback := time.UTC

	loc, fellBack := ResolveLocation("", fallback)
	if !fellBack || loc != fallback {
		t.Error("空时区应回退到兜底时区")
	}
}

// ── ResolveInstant 测试 ──

func TestResolveInstant_SameCalendarDay(t *testing.T) {
	loc := mustLoc(t, "Asia/Shanghai")
	ref := time.Date(2024, 3, 4, 22, 15, 0, 0, loc)

	got, err := ResolveInstant(ref, "12:30", loc)
	if err != nil {
		t.Fatalf("ResolveInstant 应成功: %v", err)
	}
	want := time.Date(2024, 3, 4, 12, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("期望 %v，实际=%v", want, got)
	}
}

func TestResolveInstant_RefInDifferentZone(t *testing.T) {
	shanghai := mustLoc(t, "Asia/Shanghai")
	// UTC 2024-03-04 18:00 在上海已是 03-05 02:00，日历日应按目标时区取
	ref := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)

	got, err := ResolveInstant(ref, "09:00", shanghai)
	if err != nil {
		t.Fatalf("ResolveInstant 应成功: %v", err)
	}
	want := time.Date(2024, 3, 5, 9, 0, 0, 0, shanghai)
	if !got.Equal(want) {
		t.Errorf("期望 %v，实际=%v", want, got)
	}
}

func TestResolveInstant_InvalidWallClock(t *testing.T) {
	cases := []string{"", "12", "24:00", "12:60", "ab:cd", "12:3x"}
	for _, c := range cases {
		if _, err := ResolveInstant(time.Now(), c, time.UTC); err == nil {
			t.Errorf("期望挂钟时间 %q 解析失败", c)
		}
	}
}
