package executor

import (
	"context"

	"badge/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

type CommandKind int

const (
	CommandCreateRun CommandKind = iota
	CommandQueryLatestRun
	CommandPing
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateRun:
		return "CreateRun"
	case CommandQueryLatestRun:
		return "QueryLatestRun"
	case CommandPing:
		return "Ping"
	default:
		return "Unknown"
	}
}

type result struct {
	run models.Run
	err error
}

// command is a unit of work with its own reply channel. reply is buffered so a worker never
// blocks on a caller that has gone away.
type command struct {
	ctx   context.Context
	kind  CommandKind
	run   models.Run
	key   models.RunKey
	reply chan result
}

func newCommand(ctx context.Context, kind CommandKind) *command {
	return &command{ctx: ctx, kind: kind, reply: make(chan result, 1)}
}

func (c *command) attributes() []attribute.KeyValue {
	switch c.kind {
	case CommandCreateRun:
		return []attribute.KeyValue{
			attribute.String("cds.project_key", c.run.ProjectKey),
			attribute.String("cds.workflow_name", c.run.WorkflowName),
			attribute.Int64("cds.run_num", c.run.Num),
		}
	case CommandQueryLatestRun:
		return []attribute.KeyValue{
			attribute.String("cds.project_key", c.key.ProjectKey),
			attribute.String("cds.workflow_name", c.key.WorkflowName),
		}
	default:
		return nil
	}
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Workers int
	Busy    int
	Queued  int
}
