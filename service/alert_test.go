package service

import (
	"context"
	"errors"
	"testing"

	"expensetracker/budget"
	"expensetracker/logger"
	"expensetracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	enabled bool
	err     error
	sent    []budget.Stats
	to      []string
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendBudgetAlert(toEmail, _ string, st budget.Stats) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, toEmail)
	m.sent = append(m.sent, st)
	return nil
}

func TestBudgetAlerter_SendsWhenCrossingBudget(t *testing.T) {
	svc, store, u := newTestStats(t)
	addExpenses(t, store, u.ID, models.Expense{Name: "Rent", Category: "Rent", Price: 5800, Date: day(10, 1)})

	mailer := &fakeMailer{enabled: true}
	alerter := NewBudgetAlerter(svc, mailer, logger.Discard())

	e := models.Expense{Name: "Phone", Category: "Shopping", Price: 400, Date: day(10, 20)}
	addExpenses(t, store, u.ID, e)

	assert.True(t, alerter.ExpenseAdded(context.Background(), u, &e))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@x.com", mailer.to[0])
	assert.Equal(t, 6200.0, mailer.sent[0].Spent)
	assert.True(t, mailer.sent[0].IsOverBudget)
}

func TestBudgetAlerter_NoRepeatWhenAlreadyOver(t *testing.T) {
	svc, store, u := newTestStats(t)
	addExpenses(t, store, u.ID, models.Expense{Name: "Rent", Category: "Rent", Price: 6500, Date: day(10, 1)})

	mailer := &fakeMailer{enabled: true}
	alerter := NewBudgetAlerter(svc, mailer, logger.Discard())

	e := models.Expense{Name: "Coffee", Category: "Food", Price: 5, Date: day(10, 20)}
	addExpenses(t, store, u.ID, e)

	assert.False(t, alerter.ExpenseAdded(context.Background(), u, &e))
	assert.Empty(t, mailer.sent)
}

func TestBudgetAlerter_SkipCases(t *testing.T) {
	svc, store, u := newTestStats(t)
	addExpenses(t, store, u.ID, models.Expense{Name: "Rent", Category: "Rent", Price: 5900, Date: day(10, 1)})

	// 不在本月
	old := models.Expense{Name: "Old", Category: "Other", Price: 500, Date: day(9, 10)}
	addExpenses(t, store, u.ID, old)
	enabled := &fakeMailer{enabled: true}
	assert.False(t, NewBudgetAlerter(svc, enabled, logger.Discard()).ExpenseAdded(context.Background(), u, &old))

	// 未超预算
	small := models.Expense{Name: "Tea", Category: "Food", Price: 50, Date: day(10, 20)}
	addExpenses(t, store, u.ID, small)
	assert.False(t, NewBudgetAlerter(svc, enabled, logger.Discard()).ExpenseAdded(context.Background(), u, &small))
	assert.Empty(t, enabled.sent)

	// 邮件未启用
	big := models.Expense{Name: "Laptop", Category: "Shopping", Price: 900, Date: day(10, 20)}
	addExpenses(t, store, u.ID, big)
	disabled := &fakeMailer{}
	assert.False(t, NewBudgetAlerter(svc, disabled, logger.Discard()).ExpenseAdded(context.Background(), u, &big))
	assert.Empty(t, disabled.sent)

	// 发送失败只返回 false
	failing := &fakeMailer{enabled: true, err: errors.New("smtp down")}
	assert.False(t, NewBudgetAlerter(svc, failing, logger.Discard()).ExpenseAdded(context.Background(), u, &big))

	var nilAlerter *BudgetAlerter
	assert.False(t, nilAlerter.ExpenseAdded(context.Background(), u, &big))
}
