package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"expensetracker/budget"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 10
	maxLimit     = 100
	// maxPage*maxLimit 远小于 int32 上限，计算 skip 不会溢出
	maxPage = 1_000_000
)

// errInvertedRange 自定义区间起始晚于结束
var errInvertedRange = errors.New("customStartDate must not be after customEndDate")

// rangeParams 日期筛选参数：filterType（或 period 别名）与自定义起止日期
type rangeParams struct {
	Filter      *budget.FilterType
	Mode        budget.Period
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// parseRangeParams 解析查询参数，日期按 loc 解释
func parseRangeParams(c *gin.Context, loc *time.Location) (rangeParams, error) {
	var p rangeParams

	period, hasPeriod := budget.Monthly, false
	if s := c.Query("period"); s != "" {
		period, hasPeriod = budget.ParsePeriod(s)
	}
	if s := c.Query("filterType"); s != "" {
		f, _ := budget.ParseFilterType(s)
		p.Filter = &f
	} else if hasPeriod {
		f := period.Filter()
		p.Filter = &f
	}

	switch {
	case hasPeriod:
		p.Mode = period
	case p.Filter != nil && (*p.Filter == budget.CurrentWeek || *p.Filter == budget.LastWeek):
		p.Mode = budget.Weekly
	default:
		p.Mode = budget.Monthly
	}

	var err error
	if p.CustomStart, err = parseDateParam(c, "customStartDate", loc); err != nil {
		return p, err
	}
	if p.CustomEnd, err = parseDateParam(c, "customEndDate", loc); err != nil {
		return p, err
	}
	if p.CustomStart != nil && p.CustomEnd != nil && p.CustomStart.After(*p.CustomEnd) {
		return p, errInvertedRange
	}
	return p, nil
}

func parseDateParam(c *gin.Context, name string, loc *time.Location) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%s must be in YYYY-MM-DD format", name)
	}
	return &t, nil
}

// Resolve 解析为具体区间，未指定筛选时为本月
func (p rangeParams) Resolve(now time.Time) budget.DateRange {
	filter := budget.CurrentMonth
	if p.Filter != nil {
		filter = *p.Filter
	}
	return budget.Resolve(now, filter, p.CustomStart, p.CustomEnd)
}

// DashboardQuery 转换为仪表盘查询
func (p rangeParams) DashboardQuery() service.DashboardQuery {
	return service.DashboardQuery{
		Filter:      p.Filter,
		Mode:        p.Mode,
		CustomStart: p.CustomStart,
		CustomEnd:   p.CustomEnd,
	}
}

// parsePage 解析分页参数，非法值使用默认值，limit 上限 100，page 上限 maxPage
func parsePage(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
