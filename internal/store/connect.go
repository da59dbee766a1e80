package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sosiol/sosiol/internal/logger"
)

// ConnectPostgres opens a PostgreSQL connection and pings it, retrying with exponential backoff
// until maxElapsed passes. A zero maxElapsed retries until ctx is done.
func ConnectPostgres(ctx context.Context, dsn string, maxElapsed time.Duration) (*gorm.DB, error) {
	var db *gorm.DB

	operation := func() error {
		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get underlying sql.DB: %w", err))
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = conn
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Database not reachable, retrying",
			zap.Error(err),
			zap.Duration("retry_in", next))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = maxElapsed

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
