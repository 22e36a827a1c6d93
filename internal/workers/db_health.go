package workers

import (
	"context"
	"sync"
	"time"

	"badge/internal/executor"
	"badge/internal/models"
)

// DatabaseHealthWorker pings the store through the executor pool so the check exercises the
// same connections that serve requests.
type DatabaseHealthWorker struct {
	Executor    executor.IExecutor
	RunInterval time.Duration

	mu   sync.RWMutex
	last models.HealthReport
}

func (w *DatabaseHealthWorker) Start(ctx context.Context) {
	StartPeriodicWorker(ctx, "database_health", w.RunInterval, []WorkerTask{
		{Name: "ping", Fn: w.ping},
	})
}

// Last returns the outcome of the most recent ping. CheckedAt is zero before the first one.
func (w *DatabaseHealthWorker) Last() models.HealthReport {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

func (w *DatabaseHealthWorker) ping(ctx context.Context) error {
	start := time.Now()
	err := w.Executor.Ping(ctx)

	w.mu.Lock()
	w.last = models.HealthReport{CheckedAt: start, Latency: time.Since(start), Err: err}
	w.mu.Unlock()

	return err
}
