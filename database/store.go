package database

import (
	"context"
	"errors"
	"time"

	"expensetracker/budget"
	"expensetracker/models"
)

var (
	// ErrNotFound 记录不存在（或不属于当前用户）
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail 邮箱已注册
	ErrDuplicateEmail = errors.New("email already registered")
)

// ExpenseQuery 消费记录查询条件。Start/End 为空表示不限时间，Limit 为 0 表示不分页
type ExpenseQuery struct {
	UserID string
	Start  *time.Time
	End    *time.Time
	Skip   int
	Limit  int
}

// InRange 按日期区间构造查询
func InRange(userID string, r budget.DateRange) ExpenseQuery {
	start, end := r.Start, r.End
	return ExpenseQuery{UserID: userID, Start: &start, End: &end}
}

// RangeTotal 区间内消费合计与笔数
type RangeTotal struct {
	Total float64 `json:"total" bson:"total"`
	Count int64   `json:"count" bson:"count"`
}

// Store 外部存储：用户与消费记录的读写、按区间求和、按类别分组求和
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error

	CreateExpense(ctx context.Context, e *models.Expense) error
	// DeleteExpense 仅删除属于 userID 的记录，否则返回 ErrNotFound
	DeleteExpense(ctx context.Context, userID, id string) (*models.Expense, error)
	// ListExpenses 按日期倒序返回
	ListExpenses(ctx context.Context, q ExpenseQuery) ([]models.Expense, error)
	CountExpenses(ctx context.Context, q ExpenseQuery) (int64, error)
	SumRange(ctx context.Context, userID string, start, end time.Time) (RangeTotal, error)
	// SumByCategory 按合计降序返回，合计相同保持存储返回顺序
	SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]budget.CategoryTotal, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// prepareUser 写入前统一处理：补 ID、时间戳，重算派生预算
func prepareUser(u *models.User, now time.Time) {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.RecomputeBudgets()
}

func prepareExpense(e *models.Expense, now time.Time) {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
