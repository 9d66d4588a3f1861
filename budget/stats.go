package budget

import "math"

// 每月平均周数 / 天数，用于由月预算派生周、日预算
const (
	WeeksPerMonth = 4.33
	DaysPerMonth  = 30
)

// WeeklyFromMonthly round(monthly / 4.33)
func WeeklyFromMonthly(monthly float64) float64 {
	return math.Round(monthly / WeeksPerMonth)
}

// DailyFromMonthly round(monthly / 30)
func DailyFromMonthly(monthly float64) float64 {
	return math.Round(monthly / DaysPerMonth)
}

// Stats 某周期的预算使用情况
type Stats struct {
	Period         Period  `json:"period"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
	IsOverBudget   bool    `json:"isOverBudget"`
}

// Compute 计算预算使用情况。
// PercentageUsed 限制在 [0, 100]，超支幅度需看 Remaining（不做限制，可为负）。
func Compute(period Period, budget, spent float64) Stats {
	var pct float64
	if budget > 0 {
		pct = spent / budget * 100
	}
	return Stats{
		Period:         period,
		Budget:         budget,
		Spent:          spent,
		Remaining:      budget - spent,
		PercentageUsed: math.Max(0, math.Min(pct, 100)),
		IsOverBudget:   spent > budget,
	}
}

// 区间预算启发式的天数阈值
const (
	monthLikeDays = 25
	yearLikeDays  = 300
	weekMinDays   = 5
	weekMaxDays   = 10
)

// RangeBudget 按区间天数粗略选择适用预算：
//
//	>= 300 天       月预算 * 12
//	>= 25 天        月预算
//	weekly 且 5~10 天 周预算
//	其它            0
//
// 这是启发式规则，不是精确的预算周期计算。
func RangeBudget(monthly, weekly float64, r DateRange, mode Period) float64 {
	days := r.Days()
	switch {
	case days >= yearLikeDays:
		return monthly * 12
	case days >= monthLikeDays:
		return monthly
	case mode == Weekly && days >= weekMinDays && days <= weekMaxDays:
		return weekly
	default:
		return 0
	}
}

// RangeStats 任意区间的预算统计
type RangeStats struct {
	Stats
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
}

// ComputeRange 对任意区间计算预算统计，预算为 0 时不视为超支
func ComputeRange(monthly, weekly float64, r DateRange, mode Period, spent float64) RangeStats {
	b := RangeBudget(monthly, weekly, r, mode)
	s := Compute(mode, b, spent)
	if b == 0 {
		s.IsOverBudget = false
	}
	return RangeStats{
		Stats:     s,
		Label:     r.Label,
		StartDate: r.Start.Format("2006-01-02"),
		EndDate:   r.End.Format("2006-01-02"),
		Days:      r.Days(),
	}
}

// CategoryTotal 某类别在区间内的合计
type CategoryTotal struct {
	Category   string  `json:"category" bson:"_id"`
	Total      float64 `json:"total" bson:"total"`
	Count      int64   `json:"count" bson:"count"`
	Percentage float64 `json:"percentage" bson:"-"`
}

// ApplyPercentages 按合计计算各类别占比
func ApplyPercentages(totals []CategoryTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.Total
	}
	for i := range totals {
		if sum > 0 {
			totals[i].Percentage = totals[i].Total / sum * 100
		} else {
			totals[i].Percentage = 0
		}
	}
	return sum
}
