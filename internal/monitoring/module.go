package monitoring

// Module bundles the health manager with the background job tracker it reports on.
type Module struct {
	health *HealthManager
	jobs   *JobTracker
}

// NewModule constructs a monitoring module with no registered probes.
func NewModule() *Module {
	return &Module{
		health: NewHealthManager(),
		jobs:   NewJobTracker(),
	}
}

// Health exposes the health manager responsible for liveness and readiness probes.
func (m *Module) Health() *HealthManager {
	if m == nil {
		return nil
	}
	return m.health
}

// Jobs exposes the background job tracker.
func (m *Module) Jobs() *JobTracker {
	if m == nil {
		return nil
	}
	return m.jobs
}
