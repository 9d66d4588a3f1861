package database

import (
	"context"
	"testing"
	"time"

	"expensetracker/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var expenseColumns = []string{"id", "user_id", "name", "category", "price", "date", "created_at", "updated_at"}

func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormStore(gormDB), mock, func() { sqlDB.Close() }
}

func TestGormStore_CreateExpense(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	e := &models.Expense{UserID: "u1", Name: "Lunch", Category: models.CategoryFood, Price: 12}
	require.NoError(t, store.CreateExpense(context.Background(), e))

	assert.True(t, IsValidID(e.ID))
	assert.False(t, e.Date.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeleteExpense(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs("e1", "u1").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("e1", "u1", "Lunch", "Food", 12.5, now, now, now))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := store.DeleteExpense(context.Background(), "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", deleted.Name)
	assert.Equal(t, 12.5, deleted.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeleteExpense_NotOwned(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	// 他人的记录与不存在的记录表现一致
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs("e1", "intruder").
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	_, err := store.DeleteExpense(context.Background(), "intruder", "e1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SumByCategory(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery("SELECT category, SUM\\(price\\) AS total, COUNT\\(\\*\\) AS count FROM `expenses`.*GROUP BY.*ORDER BY total DESC").
		WithArgs("u1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total", "count"}).
			AddRow("Food", 80.0, 2).
			AddRow("Transport", 20.0, 1))

	totals, err := store.SumByCategory(context.Background(), "u1", start, end)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].Category)
	assert.Equal(t, 80.0, totals[0].Total)
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, "Transport", totals[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SumRange(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	start := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 24, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(price\\), 0\\) AS total, COUNT\\(\\*\\) AS count FROM `expenses`").
		WithArgs("u1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow(1200.0, 3))

	total, err := store.SumRange(context.Background(), "u1", start, end)
	require.NoError(t, err)
	assert.Equal(t, RangeTotal{Total: 1200, Count: 3}, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListAndCount(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `expenses` WHERE user_id = \\? ORDER BY date DESC LIMIT").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("e2", "u1", "Bus", "Transport", 2.0, now, now, now))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	list, err := store.ListExpenses(context.Background(), ExpenseQuery{UserID: "u1", Skip: 10, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bus", list[0].Name)

	n, err := store.CountExpenses(context.Background(), ExpenseQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveUserRecomputesBudgets(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := &models.User{ID: "u1", FirstName: "Alice", Email: "a@x.com", MonthlyExpense: 8660, WeeklyExpense: 1, DailyExpense: 1}
	require.NoError(t, store.SaveUser(context.Background(), u))
	assert.Equal(t, 2000.0, u.WeeklyExpense)
	assert.Equal(t, 289.0, u.DailyExpense)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_GetUserByEmail_NotFound(t *testing.T) {
	store, mock, cleanup := setupMockStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
