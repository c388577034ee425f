package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/monitoring"
)

const (
	databaseComponent      = "database"
	defaultDatabaseTimeout = 2 * time.Second
)

// Database pings the store behind db. A successful ping on a pool whose connections are all
// in use with callers waiting is reported as degraded.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	if timeout <= 0 {
		timeout = defaultDatabaseTimeout
	}

	return monitoring.NewCheck(databaseComponent, func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if db == nil {
			return monitoring.ResultFromError(databaseComponent, errors.New("database not configured"), 0)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return monitoring.ResultFromError(databaseComponent, err, time.Since(start))
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		result := monitoring.ResultFromError(databaseComponent, sqlDB.PingContext(probeCtx), time.Since(start))
		if result.Status != monitoring.StatusUp {
			return result
		}

		stats := sqlDB.Stats()
		if stats.MaxOpenConnections > 0 && stats.InUse >= stats.MaxOpenConnections && stats.WaitCount > 0 {
			result.Status = monitoring.StatusDegraded
			result.Details = fmt.Sprintf("connection pool saturated: %d/%d in use", stats.InUse, stats.MaxOpenConnections)
		}
		return result
	})
}
