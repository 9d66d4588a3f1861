package budget

import (
	"fmt"
	"strconv"
	"time"
)

// CurrentMonthLabel custom 缺少边界时回退使用的标签
const CurrentMonthLabel = "Current Month"

// DateRange 一次请求计算出的日期区间，不持久化
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
	Label string    `json:"label"`
}

// Contains 判断 t 是否落在闭区间 [Start, End] 内
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days 区间覆盖的自然日数（含首尾）
func (r DateRange) Days() int {
	s := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Resolve 将筛选类型解析为具体区间。所有时间使用 now 的时区计算。
// custom 缺少任一边界时回退为当月，标签为 "Current Month"。
func Resolve(now time.Time, filter FilterType, customStart, customEnd *time.Time) DateRange {
	switch filter {
	case LastMonth:
		return monthRange(now.AddDate(0, 0, -now.Day()))
	case CurrentWeek:
		return weekRange(startOfWeek(now))
	case LastWeek:
		return weekRange(startOfWeek(now).AddDate(0, 0, -7))
	case CurrentYear:
		return yearRange(now.Year(), now.Location())
	case LastYear:
		return yearRange(now.Year()-1, now.Location())
	case Custom:
		if customStart == nil || customEnd == nil {
			r := monthRange(now)
			r.Label = CurrentMonthLabel
			return r
		}
		start := StartOfDay(customStart.In(now.Location()))
		end := EndOfDay(customEnd.In(now.Location()))
		return DateRange{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")),
		}
	default:
		return monthRange(now)
	}
}

// PeriodRange 预算周期当前实例（本周 / 本月）的区间
func PeriodRange(now time.Time, p Period) DateRange {
	return Resolve(now, p.Filter(), nil, nil)
}

// StartOfDay 当天 00:00:00.000
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay 当天 23:59:59.999
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// startOfWeek 本周周日 00:00
func startOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func weekRange(sunday time.Time) DateRange {
	end := EndOfDay(sunday.AddDate(0, 0, 6))
	return DateRange{
		Start: sunday,
		End:   end,
		Label: fmt.Sprintf("%s - %s", sunday.Format("Jan 2"), end.Format("Jan 2, 2006")),
	}
}

func monthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateRange{
		Start: start,
		End:   EndOfDay(start.AddDate(0, 1, -1)),
		Label: start.Format("January 2006"),
	}
}

func yearRange(year int, loc *time.Location) DateRange {
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), loc),
		Label: strconv.Itoa(year),
	}
}
