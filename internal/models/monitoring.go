package models

import "time"

// Monitoring line statuses.
const (
	MonitoringStatusOK    = "OK"
	MonitoringStatusWarn  = "WARN"
	MonitoringStatusAlert = "AL"
)

type MonitoringStatusLine struct {
	Component string `json:"component"`
	Value     string `json:"value"`
	Status    string `json:"status"`
}

type MonitoringStatus struct {
	Now   time.Time              `json:"now"`
	Lines []MonitoringStatusLine `json:"lines"`
}

func (m *MonitoringStatus) AddLine(lines ...MonitoringStatusLine) {
	m.Lines = append(m.Lines, lines...)
}

// IsOK reports whether no line is in alert.
func (m MonitoringStatus) IsOK() bool {
	for _, line := range m.Lines {
		if line.Status == MonitoringStatusAlert {
			return false
		}
	}
	return true
}

// HealthReport is the last outcome recorded by the database health worker.
type HealthReport struct {
	CheckedAt time.Time
	Latency   time.Duration
	Err       error
}
