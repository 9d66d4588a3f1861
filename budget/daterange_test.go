package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-21 是周三
var fixedNow = time.Date(2026, time.October, 21, 15, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		filter FilterType
		start  time.Time
		end    time.Time
		label  string
	}{
		{"current month", CurrentMonth, date(2026, 10, 1), endOf(2026, 10, 31), "October 2026"},
		{"last month", LastMonth, date(2026, 9, 1), endOf(2026, 9, 30), "September 2026"},
		{"current week", CurrentWeek, date(2026, 10, 18), endOf(2026, 10, 24), "Oct 18 - Oct 24, 2026"},
		{"last week", LastWeek, date(2026, 10, 11), endOf(2026, 10, 17), "Oct 11 - Oct 17, 2026"},
		{"current year", CurrentYear, date(2026, 1, 1), endOf(2026, 12, 31), "2026"},
		{"last year", LastYear, date(2025, 1, 1), endOf(2025, 12, 31), "2025"},
		{"unknown falls back to current month", FilterType(42), date(2026, 10, 1), endOf(2026, 10, 31), "October 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(fixedNow, tt.filter, nil, nil)
			assert.True(t, tt.start.Equal(r.Start), "start %s", r.Start)
			assert.True(t, tt.end.Equal(r.End), "end %s", r.End)
			assert.Equal(t, tt.label, r.Label)
		})
	}
}

func TestResolve_Custom(t *testing.T) {
	s := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)
	e := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	r := Resolve(fixedNow, Custom, &s, &e)
	assert.True(t, date(2026, 3, 5).Equal(r.Start))
	assert.True(t, endOf(2026, 3, 9).Equal(r.End))
	assert.Equal(t, "Mar 5, 2026 - Mar 9, 2026", r.Label)

	// 缺少任一边界回退为当月
	r = Resolve(fixedNow, Custom, &s, nil)
	assert.True(t, date(2026, 10, 1).Equal(r.Start))
	assert.True(t, endOf(2026, 10, 31).Equal(r.End))
	assert.Equal(t, CurrentMonthLabel, r.Label)

	r = Resolve(fixedNow, Custom, nil, &e)
	assert.Equal(t, CurrentMonthLabel, r.Label)
}

func TestResolve_AcrossYearBoundary(t *testing.T) {
	// 2026-01-01 周四，本周从 2025-12-28 开始
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	week := Resolve(now, CurrentWeek, nil, nil)
	assert.True(t, date(2025, 12, 28).Equal(week.Start))
	assert.True(t, endOf(2026, 1, 3).Equal(week.End))
	assert.Equal(t, "Dec 28 - Jan 3, 2026", week.Label)

	month := Resolve(now, LastMonth, nil, nil)
	assert.True(t, date(2025, 12, 1).Equal(month.Start))
	assert.Equal(t, "December 2025", month.Label)
}

func TestResolve_SundayIsFirstDay(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	r := Resolve(sunday, CurrentWeek, nil, nil)
	assert.True(t, sunday.Equal(r.Start))

	saturdayNight := time.Date(2026, 10, 24, 23, 59, 0, 0, time.UTC)
	r2 := Resolve(saturdayNight, CurrentWeek, nil, nil)
	assert.Equal(t, r, r2)
}

func TestResolve_Deterministic(t *testing.T) {
	for f := CurrentMonth; f <= Custom; f++ {
		assert.Equal(t, Resolve(fixedNow, f, nil, nil), Resolve(fixedNow, f, nil, nil), f.String())
	}
}

func TestResolve_LastWeekAdjoinsCurrentWeek(t *testing.T) {
	for i := 0; i < 14; i++ {
		now := fixedNow.AddDate(0, 0, i)
		last := Resolve(now, LastWeek, nil, nil)
		cur := Resolve(now, CurrentWeek, nil, nil)

		require.Equal(t, cur.Start.AddDate(0, 0, -1).Day(), last.End.Day())
		assert.Equal(t, time.Millisecond, cur.Start.Sub(last.End))
		assert.Equal(t, 7, last.Days())
	}
}

func TestResolve_UsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 10, 1, 2, 0, 0, 0, loc)

	r := Resolve(now, CurrentMonth, nil, nil)
	assert.Equal(t, loc, r.Start.Location())
	assert.Equal(t, time.October, r.Start.Month())
}

func TestPeriodRange(t *testing.T) {
	assert.Equal(t, Resolve(fixedNow, CurrentWeek, nil, nil), PeriodRange(fixedNow, Weekly))
	assert.Equal(t, Resolve(fixedNow, CurrentMonth, nil, nil), PeriodRange(fixedNow, Monthly))
}

func TestDateRange_DaysAndContains(t *testing.T) {
	r := DateRange{Start: date(2026, 10, 1), End: endOf(2026, 10, 10)}
	assert.Equal(t, 10, r.Days())
	assert.True(t, r.Contains(date(2026, 10, 1)))
	assert.True(t, r.Contains(endOf(2026, 10, 10)))
	assert.False(t, r.Contains(date(2026, 10, 11)))

	inverted := DateRange{Start: date(2026, 10, 10), End: date(2026, 10, 1)}
	assert.Equal(t, 0, inverted.Days())
}

func TestParseFilterType(t *testing.T) {
	f, ok := ParseFilterType("last_week")
	assert.True(t, ok)
	assert.Equal(t, LastWeek, f)

	f, ok = ParseFilterType(" CUSTOM ")
	assert.True(t, ok)
	assert.Equal(t, Custom, f)

	f, ok = ParseFilterType("fortnight")
	assert.False(t, ok)
	assert.Equal(t, CurrentMonth, f)

	text, err := LastYear.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "last_year", string(text))
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("weekly")
	assert.True(t, ok)
	assert.Equal(t, Weekly, p)
	assert.Equal(t, CurrentWeek, p.Filter())

	p, ok = ParsePeriod("daily")
	assert.False(t, ok)
	assert.Equal(t, Monthly, p)
	assert.Equal(t, CurrentMonth, p.Filter())
}
