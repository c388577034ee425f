package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workoutdiary/workoutdiary/internal/app"
	"github.com/workoutdiary/workoutdiary/internal/handlers"
	"github.com/workoutdiary/workoutdiary/internal/middleware"
	"github.com/workoutdiary/workoutdiary/internal/monitoring"
	"github.com/workoutdiary/workoutdiary/internal/services"
)

const defaultMetricsEndpoint = "/metrics"

// Services bundles the explicitly constructed collaborators served by the router.
type Services struct {
	Accounts   *services.AccountService
	Workouts   *services.WorkoutService
	Monitoring *monitoring.Module
}

// NewRouter builds the Gin engine, wires middleware and registers the account,
// workout and health routes.
func NewRouter(cfg *app.Config, svc Services) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	accountHandler, err := handlers.NewAccountHandler(svc.Accounts)
	if err != nil {
		return nil, err
	}
	workoutHandler, err := handlers.NewWorkoutHandler(svc.Workouts)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	registerHealthRoutes(r, cfg, svc.Monitoring)
	registerAccountRoutes(r, accountHandler)
	registerWorkoutRoutes(r, workoutHandler)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = defaultMetricsEndpoint
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
