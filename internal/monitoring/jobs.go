package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/workoutdiary/workoutdiary/pkg/metrics"
)

// Job results recorded by background jobs.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// JobSummary describes the recent history of a background job.
type JobSummary struct {
	Job                 string        `json:"job"`
	LastStatus          string        `json:"last_status"`
	LastRunAt           time.Time     `json:"last_run_at"`
	LastDuration        time.Duration `json:"last_duration"`
	LastError           string        `json:"last_error,omitempty"`
	LastSuccessAt       time.Time     `json:"last_success_at"`
	ConsecutiveFailures uint64        `json:"consecutive_failures"`
	TotalRuns           uint64        `json:"total_runs"`
}

// JobTracker keeps per-job run statistics for health reporting.
type JobTracker struct {
	mu   sync.Mutex
	jobs map[string]*JobSummary
	now  func() time.Time
}

// NewJobTracker returns an empty tracker.
func NewJobTracker() *JobTracker {
	return &JobTracker{jobs: make(map[string]*JobSummary), now: time.Now}
}

// Register makes a job visible before its first run.
func (t *JobTracker) Register(job string) {
	job = normalizeLabel(job)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.jobs[job]; !ok {
		t.jobs[job] = &JobSummary{Job: job}
	}
}

// Record stores the outcome of a job run and exports it to Prometheus.
func (t *JobTracker) Record(job, result, message string, duration time.Duration) {
	job = normalizeLabel(job)
	result = normalizeLabel(result)
	if duration < 0 {
		duration = 0
	}

	metrics.MaintenanceRuns.WithLabelValues(job, result).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.jobs[job]
	if !ok {
		entry = &JobSummary{Job: job}
		t.jobs[job] = entry
	}

	now := t.now()
	entry.LastStatus = result
	entry.LastRunAt = now
	entry.LastDuration = duration
	entry.LastError = strings.TrimSpace(message)
	entry.TotalRuns++

	if result == ResultSuccess {
		entry.ConsecutiveFailures = 0
		entry.LastSuccessAt = now
	} else {
		entry.ConsecutiveFailures++
	}
}

// Snapshot returns every tracked job sorted by name.
func (t *JobTracker) Snapshot() []JobSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]JobSummary, 0, len(t.jobs))
	for _, entry := range t.jobs {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
