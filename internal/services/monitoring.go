package services

import (
	"context"
	"fmt"
	"time"

	"badge/internal/events"
	"badge/internal/executor"
	"badge/internal/handlers"
	"badge/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConsumerStatus interface {
	Stats() events.Stats
}

type HealthStatus interface {
	Last() models.HealthReport
}

// MonitoringService serves /mon/status. Consumer and Health are nil when the profile does
// not run them.
type MonitoringService struct {
	Version    string
	Hostname   string
	InstanceID string
	Profile    string
	Executor   executor.IExecutor
	Consumer   ConsumerStatus
	Health     HealthStatus
}

func (s MonitoringService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", handlers.GetOneHandler(s.GetStatus))

	return r
}

func (s MonitoringService) GetStatus(_ context.Context, logger *zap.Logger) (models.MonitoringStatus, error) {
	status := models.MonitoringStatus{Now: time.Now().UTC()}

	status.AddLine(
		models.MonitoringStatusLine{Component: "Version", Value: s.Version, Status: models.MonitoringStatusOK},
		models.MonitoringStatusLine{Component: "Hostname", Value: s.Hostname, Status: models.MonitoringStatusOK},
		models.MonitoringStatusLine{Component: "Instance", Value: s.InstanceID, Status: models.MonitoringStatusOK},
		models.MonitoringStatusLine{Component: "Profile", Value: s.Profile, Status: models.MonitoringStatusOK},
		s.consumerLine(),
		s.executorLine(),
		s.databaseLine(logger),
	)

	return status, nil
}

func (s MonitoringService) consumerLine() models.MonitoringStatusLine {
	line := models.MonitoringStatusLine{Component: "Consumer"}
	if s.Consumer == nil {
		line.Value = "disabled"
		line.Status = models.MonitoringStatusOK
		return line
	}

	stats := s.Consumer.Stats()
	line.Value = fmt.Sprintf("%s (processed: %d, discarded: %d, failed: %d)",
		stats.State, stats.Processed, stats.Discarded, stats.Failed)

	switch stats.State {
	case events.StateSubscribed, events.StateConsuming:
		line.Status = models.MonitoringStatusOK
	case events.StateStarting:
		line.Status = models.MonitoringStatusWarn
	default:
		line.Status = models.MonitoringStatusAlert
	}
	return line
}

func (s MonitoringService) executorLine() models.MonitoringStatusLine {
	stats := s.Executor.Stats()
	line := models.MonitoringStatusLine{
		Component: "Executor",
		Value:     fmt.Sprintf("workers: %d, busy: %d, queued: %d", stats.Workers, stats.Busy, stats.Queued),
		Status:    models.MonitoringStatusOK,
	}
	if stats.Busy >= stats.Workers && stats.Queued > 0 {
		line.Status = models.MonitoringStatusWarn
	}
	return line
}

func (s MonitoringService) databaseLine(logger *zap.Logger) models.MonitoringStatusLine {
	line := models.MonitoringStatusLine{Component: "Database"}
	if s.Health == nil {
		line.Value = "not monitored"
		line.Status = models.MonitoringStatusOK
		return line
	}

	report := s.Health.Last()
	switch {
	case report.CheckedAt.IsZero():
		line.Value = "not checked yet"
		line.Status = models.MonitoringStatusWarn
	case report.Err != nil:
		logger.Warn("Database health check failing", zap.Error(report.Err), zap.Time("checked_at", report.CheckedAt))
		line.Value = "unreachable"
		line.Status = models.MonitoringStatusAlert
	default:
		line.Value = fmt.Sprintf("ok (%s)", report.Latency.Round(time.Microsecond))
		line.Status = models.MonitoringStatusOK
	}
	return line
}
