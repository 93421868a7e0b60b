package databaseManager

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// managerImpl 是 DatabaseManager 介面的實作
type managerImpl struct {
	db *gorm.DB
}

// GetDB 返回 GORM DB 實例
func (m *managerImpl) GetDB() *gorm.DB {
	return m.db
}

// Close 關閉數據庫連接
func (m *managerImpl) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// NewDatabaseManager 依 Driver 建立對應的數據庫管理器
func NewDatabaseManager(cfg *Config, logger *zap.Logger) (DatabaseManager, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverMySQL, "tidb":
		db, err = openMySQL(cfg)
	case DriverPostgres:
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
	if err != nil {
		logger.Error("數據庫連接失敗",
			zap.String("driver", cfg.Driver),
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("name", cfg.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// 設置連接池
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 驗證連接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("數據庫連接成功",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("name", cfg.Name))

	return &managerImpl{db: db}, nil
}

// ProvideDatabaseManager 提供 DatabaseManager 實例，用於 fx
func ProvideDatabaseManager(lc fx.Lifecycle, cfg *Config, logger *zap.Logger) (DatabaseManager, error) {
	manager, err := NewDatabaseManager(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("關閉數據庫連接")
			return manager.Close()
		},
	})

	return manager, nil
}

// Module 創建 fx 模組，包含所有數據庫相關組件
var Module = fx.Module("database",
	fx.Provide(
		ProvideDatabaseManager,
	),
)
