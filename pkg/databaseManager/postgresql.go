package databaseManager

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresDSN 組合 PostgreSQL 的 DSN
func postgresDSN(cfg *Config) string {
	port := cfg.Port
	if port <= 0 || port > 65535 {
		port = 5432
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)
}

func openPostgres(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(postgresDSN(cfg)), &gorm.Config{})
}
