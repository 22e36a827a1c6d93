// Package executortest provides an in-memory IExecutor for handler and consumer tests.
package executortest

import (
	"context"
	"sync"

	"badge/internal/executor"
	"badge/internal/models"
)

// Executor records created runs. Any hook left nil falls back to a successful no-op.
type Executor struct {
	CreateRunFn      func(ctx context.Context, run models.Run) error
	QueryLatestRunFn func(ctx context.Context, key models.RunKey) (models.Run, error)
	PingFn           func(ctx context.Context) error
	StatsValue       executor.Stats

	mu      sync.Mutex
	created []models.Run
	calls   int
}

var _ executor.IExecutor = (*Executor)(nil)

func (e *Executor) CreateRun(ctx context.Context, run models.Run) (models.Run, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.CreateRunFn != nil {
		if err := e.CreateRunFn(ctx, run); err != nil {
			return models.Run{}, err
		}
	}

	e.mu.Lock()
	e.created = append(e.created, run)
	e.mu.Unlock()
	return run, nil
}

func (e *Executor) QueryLatestRun(ctx context.Context, key models.RunKey) (models.Run, error) {
	if e.QueryLatestRunFn != nil {
		return e.QueryLatestRunFn(ctx, key)
	}
	return models.Run{}, nil
}

func (e *Executor) Ping(ctx context.Context) error {
	if e.PingFn != nil {
		return e.PingFn(ctx)
	}
	return nil
}

func (e *Executor) Stats() executor.Stats {
	return e.StatsValue
}

// Created returns the runs accepted so far, in order.
func (e *Executor) Created() []models.Run {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Run(nil), e.created...)
}

// Calls counts every CreateRun attempt, including failed ones.
func (e *Executor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}
