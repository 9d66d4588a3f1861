package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expensetracker/budget"
	"expensetracker/config"
	"expensetracker/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局 gorm 连接（mysql 驱动时有效）
var DB *gorm.DB

// Init 初始化 MySQL 连接并自动迁移表结构
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(&models.User{}, &models.Expense{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GormStore 基于 gorm 的 Store 实现
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore 创建 gorm 存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	prepareUser(u, s.now())
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *GormStore) findUser(ctx context.Context, cond string, arg string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where(cond, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) SaveUser(ctx context.Context, u *models.User) error {
	prepareUser(u, s.now())
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *GormStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	prepareExpense(e, s.now())
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	var e models.Expense
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&e).Error; err != nil {
		return nil, fmt.Errorf("delete expense: %w", err)
	}
	return &e, nil
}

func (s *GormStore) scope(ctx context.Context, q ExpenseQuery) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", q.UserID)
	if q.Start != nil {
		tx = tx.Where("date >= ?", *q.Start)
	}
	if q.End != nil {
		tx = tx.Where("date <= ?", *q.End)
	}
	return tx
}

func (s *GormStore) ListExpenses(ctx context.Context, q ExpenseQuery) ([]models.Expense, error) {
	tx := s.scope(ctx, q).Order("date DESC")
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	expenses := make([]models.Expense, 0)
	if err := tx.Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *GormStore) CountExpenses(ctx context.Context, q ExpenseQuery) (int64, error) {
	var total int64
	if err := s.scope(ctx, q).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return total, nil
}

func (s *GormStore) SumRange(ctx context.Context, userID string, start, end time.Time) (RangeTotal, error) {
	var out RangeTotal
	err := s.scope(ctx, ExpenseQuery{UserID: userID, Start: &start, End: &end}).
		Select("COALESCE(SUM(price), 0) AS total, COUNT(*) AS count").
		Scan(&out).Error
	if err != nil {
		return RangeTotal{}, fmt.Errorf("sum expenses: %w", err)
	}
	return out, nil
}

func (s *GormStore) SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]budget.CategoryTotal, error) {
	out := make([]budget.CategoryTotal, 0)
	err := s.scope(ctx, ExpenseQuery{UserID: userID, Start: &start, End: &end}).
		Select("category, SUM(price) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return out, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
