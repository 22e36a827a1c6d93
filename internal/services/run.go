package services

import (
	"context"

	"badge/internal/executor"
	"badge/internal/handlers"
	m "badge/internal/middlewares"
	"badge/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RunService accepts runs pushed directly, bypassing the broker.
type RunService struct {
	Executor  executor.IExecutor
	TokenHash string
}

func (s RunService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(m.RunAuth(s.TokenHash))

	r.With(m.Validate[models.RunCreateBody]).
		Post("/", handlers.CreateHandler(s.CreateRun))

	return r
}

func (s RunService) CreateRun(ctx context.Context, logger *zap.Logger, body models.RunCreateBody) (models.Run, error) {
	run, err := s.Executor.CreateRun(ctx, body.ToRun())
	if err != nil {
		return models.Run{}, err
	}

	logger.Info("Run stored",
		zap.String("project_key", run.ProjectKey),
		zap.String("workflow_name", run.WorkflowName),
		zap.Int64("num", run.Num),
		zap.String("status", run.Status.String()))

	return run, nil
}
