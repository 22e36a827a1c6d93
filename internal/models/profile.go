package models

// WorkerMode defines how a worker should run.
type WorkerMode string

const (
	WorkerModeDisabled WorkerMode = "disabled" // Worker is disabled
	WorkerModeAll      WorkerMode = "all"      // Every instance runs this worker
)

// Profile defines which components run for a given deployment mode.
type Profile struct {
	Name       string
	HTTPServer bool
	Workers    WorkerConfig
}

// WorkerConfig defines which workers are enabled and their mode.
type WorkerConfig struct {
	RunEvents      WorkerMode
	DatabaseHealth WorkerMode
}

// AnyEnabled returns true if any worker is enabled.
func (w WorkerConfig) AnyEnabled() bool {
	return w.RunEvents != WorkerModeDisabled || w.DatabaseHealth != WorkerModeDisabled
}

// NeedsEvents returns true if the profile consumes run events from the broker.
func (p Profile) NeedsEvents() bool {
	return p.Workers.RunEvents != WorkerModeDisabled
}
