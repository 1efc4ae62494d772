package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	pkgerrors "github.com/pkg/errors"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// Connect opens a GORM connection and pings it, retrying with exponential
// backoff for up to maxWait while the database starts.
func Connect(ctx context.Context, dsn string, maxWait time.Duration, logger *slog.Logger) (*gorm.DB, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWait

	var db *gorm.DB
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		conn, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
		})
		if err != nil {
			logger.Warn("database not ready", "attempt", attempt, "error", err)
			return err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			logger.Warn("database not ready", "attempt", attempt, "error", err)
			return err
		}

		db = conn
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect to postgres")
	}

	logger.Info("connected to postgres", "attempts", attempt)
	return db, nil
}
