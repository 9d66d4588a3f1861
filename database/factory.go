package database

import (
	"context"
	"fmt"

	"expensetracker/config"

	"github.com/sirupsen/logrus"
)

// 存储驱动
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Open 按配置的驱动创建 Store
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (Store, error) {
	switch cfg.Database.Driver {
	case DriverMySQL:
		if err := Init(cfg); err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"host": cfg.Database.Host, "db": cfg.Database.DBName}).Info("mysql store ready")
		return NewGormStore(DB), nil
	case DriverMongo:
		s, err := NewMongoStore(ctx, cfg.Database.MongoURI, cfg.Database.DBName)
		if err != nil {
			return nil, err
		}
		log.WithField("db", cfg.Database.DBName).Info("mongo store ready")
		return s, nil
	case DriverMemory:
		log.Warn("memory store in use, data is lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
}
