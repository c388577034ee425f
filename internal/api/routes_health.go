package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/internal/app"
	"github.com/workoutdiary/workoutdiary/internal/monitoring"
)

type healthEvaluator func(context.Context) monitoring.HealthReport

// registerHealthRoutes mounts /health, /health/live, /health/ready and /health/jobs. When health
// reporting is disabled the paths still exist and answer 404 with status "disabled".
func registerHealthRoutes(r *gin.Engine, cfg *app.Config, mon *monitoring.Module) {
	if cfg == nil {
		return
	}
	health := r.Group("/health")

	if !cfg.Monitoring.Health.Enabled || mon == nil || mon.Health() == nil {
		for _, path := range []string{"", "/live", "/ready", "/jobs"} {
			health.GET(path, disabledHealthHandler)
		}
		return
	}

	manager := mon.Health()
	health.GET("", healthHandler(manager.EvaluateReadiness, false))
	health.GET("/live", healthHandler(manager.EvaluateLiveness, true))
	health.GET("/ready", healthHandler(manager.EvaluateReadiness, true))
	health.GET("/jobs", jobsHandler(mon.Jobs()))
}

// healthHandler answers 200 while the report succeeds and 503 otherwise. The bare /health
// summary omits per-check results.
func healthHandler(evaluate healthEvaluator, withChecks bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := evaluate(c.Request.Context())

		status := http.StatusOK
		if !report.Success {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"success":    report.Success,
			"status":     report.Status,
			"checked_at": time.Now().UTC(),
		}
		if withChecks {
			body["checks"] = report.Checks
		}
		c.JSON(status, body)
	}
}

func jobsHandler(jobs *monitoring.JobTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries := []monitoring.JobSummary{}
		if jobs != nil {
			summaries = jobs.Snapshot()
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "jobs": summaries})
	}
}

func disabledHealthHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "status": "disabled"})
}
