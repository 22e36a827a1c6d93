package executor

import (
	"context"

	"badge/internal/models"
)

type IExecutor interface {
	CreateRun(ctx context.Context, run models.Run) (models.Run, error)
	QueryLatestRun(ctx context.Context, key models.RunKey) (models.Run, error)
	Ping(ctx context.Context) error
	Stats() Stats
}
