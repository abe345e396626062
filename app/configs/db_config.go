package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func OpenConnection(env ENV, logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.DBUser,
		env.DBPassword,
		env.DBHost,
		env.DBPort,
		env.DBName,
	)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		logger.Info("connecting to database", zap.Int("attempt", i+1), zap.Int("max_attempts", maxRetries), zap.String("host", env.DBHost), zap.String("db_name", env.DBName))
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					logger.Info("database connection established")
					return db, nil
				}
			}
			err = pingErr
		}
		lastErr = err
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("retry_in", retryDelay))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
