package resolver

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/domain"
)

const minutesPerDay = 24 * 60

// TimeWindow 星期+时段窗口
// Days 为空 = 每天；Start/End 同为 nil = 全天；End <= Start 视为跨夜窗口
type TimeWindow struct {
	Days  []int64 // 0=Sunday..6=Saturday
	Start *int    // 分钟数（自午夜）
	End   *int
}

// Matches 判断本地星期/本地时刻是否落在窗口内
// 注意：Start == End（均非空）会走跨夜分支，退化为恒匹配；
// 线上排期可能依赖该行为，保持原样不修
func (w TimeWindow) Matches(dow int, minuteOfDay int) bool {
	if len(w.Days) > 0 {
		found := false
		for _, d := range w.Days {
			if int(d) == dow {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if w.Start == nil && w.End == nil {
		return true
	}
	start := 0
	if w.Start != nil {
		start = *w.Start
	}
	end := minutesPerDay
	if w.End != nil {
		end = *w.End
	}

	if end <= start {
		// 跨夜：晚段 [start, 24:00) 或早段 [00:00, end)
		return minuteOfDay >= start || minuteOfDay < end
	}
	return minuteOfDay >= start && minuteOfDay < end
}

// MatchesAt 以本地时刻判断
func (w TimeWindow) MatchesAt(nowLocal time.Time) bool {
	return w.Matches(int(nowLocal.Weekday()), nowLocal.Hour()*60+nowLocal.Minute())
}

// ParseTimeOfDay 解析 "HH:MM" / "HH:MM:SS" 为自午夜分钟数
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return h*60 + m, nil
}

// windowFromEntry 由排期条目构造窗口；非法时刻字段按未设置处理
func windowFromEntry(e *domain.ScheduleEntry) TimeWindow {
	w := TimeWindow{Days: e.DaysOfWeek}
	if e.StartTime.Valid && e.StartTime.String != "" {
		if v, err := ParseTimeOfDay(e.StartTime.String); err == nil {
			w.Start = &v
		}
	}
	if e.EndTime.Valid && e.EndTime.String != "" {
		if v, err := ParseTimeOfDay(e.EndTime.String); err == nil {
			w.End = &v
		}
	}
	return w
}
