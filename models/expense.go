package models

import (
	"errors"
	"strings"
	"time"
)

// Expense 消费记录模型
type Expense struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36" bson:"_id"`
	UserID    string    `json:"userId" gorm:"size:36;index:idx_expense_user_date,priority:1;index:idx_expense_user_category,priority:1;not null" bson:"userId"`
	Name      string    `json:"name" gorm:"size:255;not null" bson:"name"`
	Category  string    `json:"category" gorm:"size:50;index:idx_expense_user_category,priority:2;not null" bson:"category"`
	Price     float64   `json:"price" gorm:"type:decimal(12,2);not null" bson:"price"`
	Date      time.Time `json:"date" gorm:"index:idx_expense_user_date,priority:2;not null" bson:"date"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// 消费记录校验错误
var (
	ErrExpenseNameTooShort = errors.New("expense name must be at least 2 characters long")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrInvalidCategory     = errors.New("invalid expense category")
)

// Normalize 填充默认类别与日期，并去除名称首尾空白
func (e *Expense) Normalize(now time.Time) {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = strings.TrimSpace(e.Category)
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if e.Date.IsZero() {
		e.Date = now
	}
}

// Validate 校验名称长度、价格与类别
func (e *Expense) Validate() error {
	if len([]rune(e.Name)) < 2 {
		return ErrExpenseNameTooShort
	}
	if e.Price < 0 {
		return ErrNegativePrice
	}
	if !IsValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	return nil
}
