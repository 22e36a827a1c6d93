package services

import (
	"context"
	"net/http"

	"badge/internal/badge"
	"badge/internal/configuration"
	"badge/internal/executor"
	"badge/internal/handlers"
	h "badge/internal/helpers"
	"badge/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BadgeService struct {
	Executor executor.IExecutor
	Renderer badge.IRenderer
}

func (s BadgeService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{project}/{workflow}/badge.svg", handlers.ImageHandler(badgeRequest, s.GetBadge))

	return r
}

func badgeRequest(r *http.Request) models.BadgeRequest {
	return models.BadgeRequest{
		ProjectKey:   chi.URLParam(r, "project"),
		WorkflowName: chi.URLParam(r, "workflow"),
		Branch:       h.ResolveBranch(r.URL.Query().Get("branch"), r.Referer()),
	}
}

func (s BadgeService) GetBadge(ctx context.Context, logger *zap.Logger, req models.BadgeRequest) ([]byte, error) {
	run, err := s.Executor.QueryLatestRun(ctx, req.Key())
	if err != nil {
		return nil, err
	}

	color := badge.Color(run.Status)
	logger.Debug("Rendering badge",
		zap.String("project_key", req.ProjectKey),
		zap.String("workflow_name", req.WorkflowName),
		zap.Int64("num", run.Num),
		zap.String("status", run.Status.String()),
		zap.String("color", color))

	return s.Renderer.Render(configuration.BadgeSubject, run.Status.String(), color)
}
