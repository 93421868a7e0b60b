package databaseManager

import "gorm.io/gorm"

// 支援的數據庫驅動
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DatabaseManager 提供數據庫操作的介面
type DatabaseManager interface {
	// 獲取 GORM DB 實例
	GetDB() *gorm.DB
	// 關閉數據庫連接
	Close() error
}

// Config 數據庫連接配置
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	MaxOpenConns int
	MaxIdleConns int
}
