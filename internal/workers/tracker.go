package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WorkerTask is one named step of a worker cycle.
type WorkerTask struct {
	Name string
	Fn   func(ctx context.Context) error
}

// StartPeriodicWorker runs a cycle immediately, then once per interval until ctx is done.
func StartPeriodicWorker(ctx context.Context, workerName string, interval time.Duration, tasks []WorkerTask) {
	logger := zap.L().With(zap.String("worker", workerName))
	logger.Info("Starting worker", zap.Duration("interval", interval))

	runWorkerCycle(ctx, logger, tasks)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker shutting down")
			return
		case <-ticker.C:
			runWorkerCycle(ctx, logger, tasks)
		}
	}
}

func runWorkerCycle(ctx context.Context, logger *zap.Logger, tasks []WorkerTask) {
	startTime := time.Now()
	failed := 0

	for _, task := range tasks {
		if err := task.Fn(ctx); err != nil {
			failed++
			logger.Warn("Worker task failed", zap.String("task", task.Name), zap.Error(err))
		}
	}

	logger.Debug("Worker cycle complete",
		zap.Int("tasks", len(tasks)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(startTime)))
}
