package service

import (
	"context"

	"expensetracker/budget"
	"expensetracker/models"

	"github.com/sirupsen/logrus"
)

// Mailer 超预算提醒的发送方
type Mailer interface {
	Enabled() bool
	SendBudgetAlert(toEmail, name string, st budget.Stats) error
}

// BudgetAlerter 新增消费后检查是否首次超出月预算
type BudgetAlerter struct {
	stats  *StatsService
	mailer Mailer
	log    *logrus.Logger
}

// NewBudgetAlerter 创建超预算提醒
func NewBudgetAlerter(stats *StatsService, mailer Mailer, log *logrus.Logger) *BudgetAlerter {
	return &BudgetAlerter{stats: stats, mailer: mailer, log: log}
}

// ExpenseAdded 本笔消费使本月花费越过月预算时发送提醒，返回是否已发送。
// 发送失败只记录日志。
func (a *BudgetAlerter) ExpenseAdded(ctx context.Context, u *models.User, e *models.Expense) bool {
	if a == nil || a.mailer == nil || !a.mailer.Enabled() {
		return false
	}
	month := budget.PeriodRange(a.stats.Now(), budget.Monthly)
	if !month.Contains(e.Date) {
		return false
	}

	st, err := a.stats.CurrentStats(ctx, u, budget.Monthly)
	if err != nil {
		a.log.WithError(err).WithField("user_id", u.ID).Warn("budget alert check failed")
		return false
	}
	// 之前已超支则不重复提醒
	if !st.IsOverBudget || st.Spent-e.Price > st.Budget {
		return false
	}

	if err := a.mailer.SendBudgetAlert(u.Email, u.FullName(), st); err != nil {
		a.log.WithError(err).WithField("user_id", u.ID).Warn("send budget alert failed")
		return false
	}
	a.log.WithFields(logrus.Fields{"user_id": u.ID, "spent": st.Spent, "budget": st.Budget}).Info("budget alert sent")
	return true
}
