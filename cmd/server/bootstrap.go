package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/api"
	"github.com/workoutdiary/workoutdiary/internal/app"
	"github.com/workoutdiary/workoutdiary/internal/app/maintenance"
	"github.com/workoutdiary/workoutdiary/internal/database"
	"github.com/workoutdiary/workoutdiary/internal/monitoring"
	"github.com/workoutdiary/workoutdiary/internal/monitoring/checks"
	"github.com/workoutdiary/workoutdiary/internal/services"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/mail"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB         *gorm.DB
	Accounts   *services.AccountService
	Workouts   *services.WorkoutService
	Monitoring *monitoring.Module
	Cleaner    *maintenance.Cleaner
	Router     *gin.Engine
}

// bootstrapRuntime initialises the database, services, background jobs and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	store, err := services.NewGormAccountStore(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise account store: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return nil, fmt.Errorf("initialise smtp mailer: %w", err)
	}
	if !cfg.Email.SMTP.Enabled {
		log.Info("smtp delivery disabled; codes will not be emailed")
	}
	notifier := services.NewMailNotifier(mailer, cfg.Accounts.NotifierOptions()...)

	stack.Accounts, err = services.NewAccountService(store, notifier, cfg.Accounts.ServiceOptions()...)
	if err != nil {
		return nil, fmt.Errorf("initialise account service: %w", err)
	}

	stack.Workouts, err = services.NewWorkoutService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise workout service: %w", err)
	}

	stack.Monitoring = monitoring.NewModule()
	stack.Monitoring.Health().RegisterReadiness(checks.Database(stack.DB, cfg.Monitoring.Health.DatabaseTimeout))
	stack.Monitoring.Health().RegisterLiveness(checks.Maintenance(stack.Monitoring.Jobs(), 0))
	stack.Monitoring.Jobs().Register(maintenance.CodeCleanupJob)

	stack.Cleaner = maintenance.NewCleaner(store,
		maintenance.WithCodeCleanupSchedule(cfg.Maintenance.CodeCleanupSchedule),
		maintenance.WithRunRecorder(stack.Monitoring.Jobs()),
	)
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.Router, err = api.NewRouter(cfg, api.Services{
		Accounts:   stack.Accounts,
		Workouts:   stack.Workouts,
		Monitoring: stack.Monitoring,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	if ctx != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	success = true
	return stack, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			<-stopCtx.Done()
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
		s.Cleaner = nil
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
		s.DB = nil
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.ConnectionConfig()
	db, err := database.OpenAndMigrate(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", dbCfg.Driver))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
