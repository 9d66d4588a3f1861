package service

import (
	"context"
	"fmt"
	"time"

	"expensetracker/budget"
	"expensetracker/database"
	"expensetracker/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RecentExpenseLimit 仪表盘最近消费条数
const RecentExpenseLimit = 5

// StatsService 预算统计与消费聚合
type StatsService struct {
	store database.Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewStatsService 创建统计服务
func NewStatsService(store database.Store, log *logrus.Logger) *StatsService {
	return &StatsService{store: store, log: log, now: time.Now}
}

// WithClock 替换时钟，测试使用
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Now 当前时间
func (s *StatsService) Now() time.Time {
	return s.now()
}

// CurrentStats 本周 / 本月的预算使用情况
func (s *StatsService) CurrentStats(ctx context.Context, u *models.User, p budget.Period) (budget.Stats, error) {
	r := budget.PeriodRange(s.now(), p)
	total, err := s.store.SumRange(ctx, u.ID, r.Start, r.End)
	if err != nil {
		return budget.Stats{}, fmt.Errorf("%s stats: %w", p, err)
	}
	b := u.MonthlyExpense
	if p == budget.Weekly {
		b = u.WeeklyExpense
	}
	return budget.Compute(p, b, total.Total), nil
}

// RangeStats 任意区间的预算统计，预算按区间天数启发式选择
func (s *StatsService) RangeStats(ctx context.Context, u *models.User, r budget.DateRange, mode budget.Period) (budget.RangeStats, error) {
	total, err := s.store.SumRange(ctx, u.ID, r.Start, r.End)
	if err != nil {
		return budget.RangeStats{}, fmt.Errorf("range stats: %w", err)
	}
	return budget.ComputeRange(u.MonthlyExpense, u.WeeklyExpense, r, mode, total.Total), nil
}

// CategoryBreakdown 区间内按类别分组的消费合计
type CategoryBreakdown struct {
	DateRange  budget.DateRange       `json:"dateRange"`
	TotalSpent float64                `json:"totalSpent"`
	Categories []budget.CategoryTotal `json:"categories"`
}

// CategoryBreakdown 按类别汇总，按合计降序
func (s *StatsService) CategoryBreakdown(ctx context.Context, userID string, r budget.DateRange) (*CategoryBreakdown, error) {
	totals, err := s.store.SumByCategory(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	sum := budget.ApplyPercentages(totals)
	return &CategoryBreakdown{DateRange: r, TotalSpent: sum, Categories: totals}, nil
}

// ExpenseSummary 区间内的消费明细、合计与笔数
type ExpenseSummary struct {
	Expenses   []models.Expense `json:"expenses"`
	TotalSpent float64          `json:"totalSpent"`
	Count      int64            `json:"count"`
}

// SumAndCount 查询区间内全部消费及合计
func (s *StatsService) SumAndCount(ctx context.Context, userID string, r budget.DateRange) (*ExpenseSummary, error) {
	g, gctx := errgroup.WithContext(ctx)

	var expenses []models.Expense
	var total database.RangeTotal
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, database.InRange(userID, r))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.SumRange(gctx, userID, r.Start, r.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sum and count: %w", err)
	}
	return &ExpenseSummary{Expenses: expenses, TotalSpent: total.Total, Count: total.Count}, nil
}

// DashboardQuery 仪表盘筛选条件，Filter 为空表示未指定筛选
type DashboardQuery struct {
	Filter      *budget.FilterType
	Mode        budget.Period
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// UserSummary 仪表盘中的用户概要
type UserSummary struct {
	Name           string  `json:"name"`
	Email          string  `json:"emailId"`
	ProfilePicture string  `json:"profilePicture"`
	MonthlyExpense float64 `json:"monthlyExpense"`
	WeeklyExpense  float64 `json:"weeklyExpense"`
	DailyExpense   float64 `json:"dailyExpense"`
}

// Dashboard 仪表盘数据
type Dashboard struct {
	User              UserSummary            `json:"user"`
	MonthlyStats      budget.Stats           `json:"monthlyStats"`
	WeeklyStats       budget.Stats           `json:"weeklyStats"`
	FilteredStats     *budget.RangeStats     `json:"filteredStats,omitempty"`
	DateRange         budget.DateRange       `json:"dateRange"`
	CategoryBreakdown []budget.CategoryTotal `json:"categoryBreakdown"`
	RecentExpenses    []models.Expense       `json:"recentExpenses"`
}

// Dashboard 并发执行各项互不依赖的查询，任一失败则整体失败
func (s *StatsService) Dashboard(ctx context.Context, u *models.User, q DashboardQuery) (*Dashboard, error) {
	now := s.now()
	filter := budget.CurrentMonth
	if q.Filter != nil {
		filter = *q.Filter
	}
	r := budget.Resolve(now, filter, q.CustomStart, q.CustomEnd)

	d := &Dashboard{
		User: UserSummary{
			Name:           u.FullName(),
			Email:          u.Email,
			ProfilePicture: u.ProfilePicture,
			MonthlyExpense: u.MonthlyExpense,
			WeeklyExpense:  u.WeeklyExpense,
			DailyExpense:   u.DailyExpense,
		},
		DateRange: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.CurrentStats(gctx, u, budget.Monthly)
		d.MonthlyStats = st
		return err
	})
	g.Go(func() error {
		st, err := s.CurrentStats(gctx, u, budget.Weekly)
		d.WeeklyStats = st
		return err
	})
	g.Go(func() error {
		totals, err := s.store.SumByCategory(gctx, u.ID, r.Start, r.End)
		if err != nil {
			return fmt.Errorf("category breakdown: %w", err)
		}
		budget.ApplyPercentages(totals)
		d.CategoryBreakdown = totals
		return nil
	})
	g.Go(func() error {
		recent, err := s.store.ListExpenses(gctx, database.ExpenseQuery{UserID: u.ID, Limit: RecentExpenseLimit})
		if err != nil {
			return fmt.Errorf("recent expenses: %w", err)
		}
		d.RecentExpenses = recent
		return nil
	})
	if q.Filter != nil {
		g.Go(func() error {
			st, err := s.RangeStats(gctx, u, r, q.Mode)
			if err != nil {
				return err
			}
			d.FilteredStats = &st
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Error("dashboard query failed")
		return nil, err
	}
	return d, nil
}
