package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/metrics"
)

const (
	// CodeCleanupJob names the expired one-time code purge in logs and health reports.
	CodeCleanupJob = "code_cleanup"

	defaultCodeCleanupSpec = "@hourly"
)

// CodePurger removes expired one-time codes.
type CodePurger interface {
	PurgeExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

// RunRecorder receives the outcome of every job run.
type RunRecorder interface {
	Record(job, result, message string, duration time.Duration)
}

// Cleaner coordinates background maintenance tasks such as purging expired one-time codes.
type Cleaner struct {
	codes    CodePurger
	recorder RunRecorder
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger

	codeSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithCodeCleanupSchedule overrides the cron specification for the expired code purge.
func WithCodeCleanupSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.codeSchedule = spec
		}
	}
}

// WithRunRecorder reports job outcomes, typically to the monitoring job tracker.
func WithRunRecorder(recorder RunRecorder) Option {
	return func(cleaner *Cleaner) {
		cleaner.recorder = recorder
	}
}

// NewCleaner constructs a Cleaner. A nil purger disables the code cleanup job.
func NewCleaner(codes CodePurger, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		codes:        codes,
		now:          time.Now,
		codeSchedule: defaultCodeCleanupSpec,
		log:          logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers cleanup jobs with the cron scheduler and launches it when at least one job is enabled.
func (c *Cleaner) Start() error {
	if c.codes == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.codeSchedule, func() {
		if err := c.purgeCodes(context.Background()); err != nil {
			c.log.Warn("code cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes every configured cleanup routine sequentially. Used in tests and during
// graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if c.codes != nil {
		errs = multierr.Append(errs, c.purgeCodes(ctx))
	}
	return errs
}

func (c *Cleaner) purgeCodes(ctx context.Context) error {
	if c.codes == nil {
		return errors.New("code cleanup: purger is required")
	}

	start := time.Now()
	purged, err := c.codes.PurgeExpiredCodes(ctx, c.now())
	c.record(CodeCleanupJob, err, time.Since(start))
	if err != nil {
		return err
	}

	if purged > 0 {
		metrics.ExpiredCodesPurged.Add(float64(purged))
		c.log.Info("purged expired one-time codes", zap.Int64("count", purged))
	}
	return nil
}

func (c *Cleaner) record(job string, err error, duration time.Duration) {
	if c.recorder == nil {
		return
	}
	if err != nil {
		c.recorder.Record(job, "failure", err.Error(), duration)
		return
	}
	c.recorder.Record(job, "success", "", duration)
}
