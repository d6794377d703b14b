package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
)

func NewPostgresDB(cfg Config, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		logger.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxRetries))
		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			logger.Info("database connected", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		if db != nil {
			db.Close()
		}
		logger.Warn("database not ready yet", zap.Duration("retry_in", retryDelay), zap.Error(err))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", maxRetries, err)
}
