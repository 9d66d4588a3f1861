package models

import (
	"strings"
	"time"

	"expensetracker/budget"
)

// 用户资料默认值
const (
	DefaultAge            = 19
	DefaultGender         = GenderMale
	DefaultProfilePicture = "https://img.daisyui.com/images/stock/photo-1534528741775-53994a69daeb.webp"
	DefaultMonthlyBudget  = 6000
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User 用户模型，weekly/daily 预算为由 monthly 派生的缓存值
type User struct {
	ID             string    `json:"_id" gorm:"primaryKey;size:36" bson:"_id"`
	FirstName      string    `json:"firstName" gorm:"size:40;not null" bson:"firstName"`
	LastName       string    `json:"lastName" gorm:"size:40" bson:"lastName"`
	Email          string    `json:"emailId" gorm:"uniqueIndex;size:100;not null" bson:"emailId"`
	Password       string    `json:"-" gorm:"size:255;not null" bson:"password"`
	Age            int       `json:"age" gorm:"default:19" bson:"age"`
	Gender         string    `json:"gender" gorm:"size:10;default:male" bson:"gender"`
	ProfilePicture string    `json:"profilePicture" gorm:"size:500" bson:"profilePicture"`
	MonthlyExpense float64   `json:"monthlyExpense" gorm:"not null" bson:"monthlyExpense"`
	WeeklyExpense  float64   `json:"weeklyExpense" gorm:"not null" bson:"weeklyExpense"`
	DailyExpense   float64   `json:"dailyExpense" gorm:"not null" bson:"dailyExpense"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"-" bson:"updatedAt"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// RecomputeBudgets 由月预算重新计算周、日预算，每次持久化用户前调用
func (u *User) RecomputeBudgets() {
	u.WeeklyExpense = budget.WeeklyFromMonthly(u.MonthlyExpense)
	u.DailyExpense = budget.DailyFromMonthly(u.MonthlyExpense)
}

// ApplyDefaults 为注册时未提供的字段填充默认值
func (u *User) ApplyDefaults(defaultMonthly float64) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	if u.Age == 0 {
		u.Age = DefaultAge
	}
	if u.Gender == "" {
		u.Gender = DefaultGender
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
	if u.MonthlyExpense == 0 {
		if defaultMonthly <= 0 {
			defaultMonthly = DefaultMonthlyBudget
		}
		u.MonthlyExpense = defaultMonthly
	}
	u.RecomputeBudgets()
}

// FullName 姓名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
