package databaseManager

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// mysqlDSN 組合 MySQL 的 DSN
// 格式: username:password@tcp(host:port)/database?charset=utf8mb4&parseTime=True&loc=Local
func mysqlDSN(cfg *Config) string {
	// 檢查端口是否有效，如果無效則使用默認值
	port := cfg.Port
	if port <= 0 || port > 65535 {
		port = 3306
	}

	// 如果主機名是 localhost，替換為 127.0.0.1 以強制使用 IPv4
	host := cfg.Host
	if host == "localhost" {
		host = "127.0.0.1"
	}

	auth := cfg.User
	if cfg.Password != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Password)
	}

	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local&allowNativePasswords=true",
		auth, host, port, cfg.Name)
}

func openMySQL(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(mysqlDSN(cfg)), &gorm.Config{})
}
