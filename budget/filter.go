// Package budget 预算与统计计算：日期范围解析、预算使用率、派生预算值。
// 包内函数均为纯函数，"当前时间" 由调用方注入。
package budget

import "strings"

// FilterType 日期筛选类型（封闭枚举）
type FilterType int

const (
	CurrentMonth FilterType = iota
	LastMonth
	CurrentWeek
	LastWeek
	CurrentYear
	LastYear
	Custom
)

var filterNames = [...]string{
	CurrentMonth: "current_month",
	LastMonth:    "last_month",
	CurrentWeek:  "current_week",
	LastWeek:     "last_week",
	CurrentYear:  "current_year",
	LastYear:     "last_year",
	Custom:       "custom",
}

func (f FilterType) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return filterNames[CurrentMonth]
	}
	return filterNames[f]
}

// MarshalText 序列化为 snake_case 名称
func (f FilterType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText 反序列化，未知值回退为 current_month
func (f *FilterType) UnmarshalText(b []byte) error {
	*f, _ = ParseFilterType(string(b))
	return nil
}

// ParseFilterType 解析筛选类型，未知值回退为 current_month，ok 表示是否识别
func ParseFilterType(s string) (f FilterType, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range filterNames {
		if name == s {
			return FilterType(i), true
		}
	}
	return CurrentMonth, false
}

// Period 预算周期
type Period int

const (
	Monthly Period = iota
	Weekly
)

func (p Period) String() string {
	if p == Weekly {
		return "weekly"
	}
	return "monthly"
}

// MarshalText 序列化为 weekly / monthly
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText 反序列化，未知值回退为 monthly
func (p *Period) UnmarshalText(b []byte) error {
	*p, _ = ParsePeriod(string(b))
	return nil
}

// ParsePeriod 解析预算周期，未知值回退为 monthly
func ParsePeriod(s string) (p Period, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return Weekly, true
	case "monthly":
		return Monthly, true
	}
	return Monthly, false
}

// Filter 返回该周期 "当前" 实例对应的筛选类型
func (p Period) Filter() FilterType {
	if p == Weekly {
		return CurrentWeek
	}
	return CurrentMonth
}
