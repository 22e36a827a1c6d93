package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	apierrors "badge/internal/errors"
	"badge/internal/executor"
	"badge/internal/messaging"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

const DefaultRetryDelay = time.Second

type State int32

const (
	StateStarting State = iota
	StateSubscribed
	StateConsuming
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateSubscribed:
		return "Subscribed"
	case StateConsuming:
		return "Consuming"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

type Stats struct {
	State     State
	Processed int64
	Discarded int64
	Failed    int64
}

// RunConsumer persists run workflow events one at a time. A message is acked only once its
// run is stored; a failed write is nacked so the broker delivers it again.
type RunConsumer struct {
	subscriber messaging.ISubscriber
	executor   executor.IExecutor
	retryDelay time.Duration

	state     atomic.Int32
	processed atomic.Int64
	discarded atomic.Int64
	failed    atomic.Int64
}

func NewRunConsumer(subscriber messaging.ISubscriber, exec executor.IExecutor, retryDelay time.Duration) *RunConsumer {
	return &RunConsumer{
		subscriber: subscriber,
		executor:   exec,
		retryDelay: retryDelay,
	}
}

func (c *RunConsumer) State() State {
	return State(c.state.Load())
}

func (c *RunConsumer) Stats() Stats {
	return Stats{
		State:     c.State(),
		Processed: c.processed.Load(),
		Discarded: c.discarded.Load(),
		Failed:    c.failed.Load(),
	}
}

// Run blocks until ctx is cancelled. A failed subscribe or a subscription that closes while
// ctx is still live is returned wrapped with ErrBrokerConnection.
func (c *RunConsumer) Run(ctx context.Context) error {
	c.state.Store(int32(StateStarting))
	defer c.state.Store(int32(StateStopping))

	messages, err := c.subscriber.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", apierrors.ErrBrokerConnection, err)
	}
	c.state.Store(int32(StateSubscribed))
	zap.L().Info("Run events consumer subscribed")

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Run events consumer stopping", zap.Error(ctx.Err()))
			return nil
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: subscription closed", apierrors.ErrBrokerConnection)
			}
			c.state.Store(int32(StateConsuming))
			c.handle(ctx, msg)
		}
	}
}

func (c *RunConsumer) handle(ctx context.Context, msg *message.Message) {
	logger := zap.L().With(zap.String("message_uuid", msg.UUID))

	run, err := DecodeRun(msg.Payload)
	if errors.Is(err, errIgnoredEvent) {
		msg.Ack()
		return
	}
	if err != nil {
		logger.Warn("Discarding malformed run event", zap.Error(err))
		c.discarded.Add(1)
		msg.Ack()
		return
	}

	logger = logger.With(
		zap.String("project_key", run.ProjectKey),
		zap.String("workflow_name", run.WorkflowName),
		zap.Int64("num", run.Num),
		zap.String("status", run.Status.String()))

	if _, err = c.executor.CreateRun(ctx, run); err != nil {
		msg.Nack()
		if ctx.Err() != nil {
			logger.Info("Abandoned run event on shutdown", zap.Error(err))
			return
		}
		c.failed.Add(1)
		logger.Error("Failed to store run, event will be redelivered", zap.Error(err))
		c.wait(ctx)
		return
	}

	msg.Ack()
	c.processed.Add(1)
	logger.Debug("Stored run")
}

func (c *RunConsumer) wait(ctx context.Context) {
	if c.retryDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
