package executor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apierrors "badge/internal/errors"
	"badge/internal/models"
	store "badge/internal/sql"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minReconnectBackoff = 100 * time.Millisecond
	maxReconnectBackoff = 10 * time.Second
)

type Config struct {
	Workers        int
	QueueSize      int
	CommandTimeout time.Duration
}

func ConfigFrom(config models.DatabaseConfiguration) Config {
	return Config{
		Workers:        config.Workers,
		QueueSize:      config.QueueSize,
		CommandTimeout: config.CommandTimeout,
	}
}

// Pool runs store commands on a fixed set of workers. Each worker holds one connection for its
// whole life and takes the next command from a shared bounded queue.
type Pool struct {
	db      *gorm.DB
	config  Config
	tasks   chan *command
	quit    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	tracer  trace.Tracer
	busy    atomic.Int32
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	started atomic.Bool
	stop    sync.Once
}

var _ IExecutor = (*Pool)(nil)

func NewPool(db *gorm.DB, config Config) *Pool {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.QueueSize < 0 {
		config.QueueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		db:     db,
		config: config,
		tasks:  make(chan *command, config.QueueSize),
		quit:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		tracer: otel.Tracer("badge/executor"),
	}
}

func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	for i := range p.config.Workers {
		p.wg.Add(1)
		go p.runWorker(i)
	}

	zap.L().Info("Executor pool started",
		zap.Int("workers", p.config.Workers),
		zap.Int("queue_size", p.config.QueueSize),
		zap.Duration("command_timeout", p.config.CommandTimeout))
}

// Stop refuses new commands, lets running commands finish, fails queued ones with ErrPoolClosed
// and releases every connection.
func (p *Pool) Stop() {
	p.stop.Do(func() {
		close(p.quit)
		p.cancel()

		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		p.wg.Wait()

		drained := 0
		for {
			select {
			case cmd := <-p.tasks:
				cmd.reply <- result{err: apierrors.ErrPoolClosed}
				drained++
			default:
				zap.L().Info("Executor pool stopped", zap.Int("drained_commands", drained))
				return
			}
		}
	})
}

func (p *Pool) CreateRun(ctx context.Context, run models.Run) (models.Run, error) {
	res := p.do(ctx, CommandCreateRun, func(cmd *command) { cmd.run = run })
	if res.err != nil {
		return models.Run{}, res.err
	}
	return run, nil
}

func (p *Pool) QueryLatestRun(ctx context.Context, key models.RunKey) (models.Run, error) {
	res := p.do(ctx, CommandQueryLatestRun, func(cmd *command) { cmd.key = key })
	return res.run, res.err
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.do(ctx, CommandPing, func(*command) {}).err
}

func (p *Pool) Stats() Stats {
	return Stats{
		Workers: p.config.Workers,
		Busy:    int(p.busy.Load()),
		Queued:  len(p.tasks),
	}
}

func (p *Pool) do(ctx context.Context, kind CommandKind, fill func(*command)) result {
	cmdCtx, cancel := context.WithTimeout(ctx, p.config.CommandTimeout)
	defer cancel()

	cmd := newCommand(cmdCtx, kind)
	fill(cmd)

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return result{err: apierrors.ErrPoolClosed}
	}
	select {
	case p.tasks <- cmd:
		p.mu.RUnlock()
	case <-p.quit:
		p.mu.RUnlock()
		return result{err: apierrors.ErrPoolClosed}
	case <-cmdCtx.Done():
		p.mu.RUnlock()
		return result{err: contextError(cmdCtx)}
	}

	select {
	case res := <-cmd.reply:
		return res
	case <-cmdCtx.Done():
		return result{err: contextError(cmdCtx)}
	}
}

func (p *Pool) runWorker(id int) {
	defer p.wg.Done()

	logger := zap.L().With(zap.Int("worker", id))
	backoff := minReconnectBackoff

	for {
		err := p.db.WithContext(p.ctx).Connection(func(conn *gorm.DB) error {
			backoff = minReconnectBackoff
			return p.serve(conn)
		})
		if err == nil {
			return
		}

		logger.Warn("Executor worker lost its connection",
			zap.Error(err),
			zap.Duration("retry_in", backoff))

		select {
		case <-p.quit:
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxReconnectBackoff)
	}
}

// serve returns nil on shutdown and the error when the held connection is no longer usable.
func (p *Pool) serve(conn *gorm.DB) error {
	for {
		select {
		case <-p.quit:
			return nil
		default:
		}

		select {
		case <-p.quit:
			return nil
		case cmd := <-p.tasks:
			if err := p.execute(conn, cmd); isBadConn(err) {
				return err
			}
		}
	}
}

func (p *Pool) execute(conn *gorm.DB, cmd *command) error {
	if cmd.ctx.Err() != nil {
		cmd.reply <- result{err: contextError(cmd.ctx)}
		return nil
	}

	p.busy.Add(1)
	defer p.busy.Add(-1)

	ctx, span := p.tracer.Start(cmd.ctx, "executor."+cmd.kind.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(cmd.attributes()...))
	defer span.End()

	tx := conn.WithContext(ctx)

	var res result
	switch cmd.kind {
	case CommandCreateRun:
		res.run = cmd.run
		res.err = store.InsertRun(tx, cmd.run)
	case CommandQueryLatestRun:
		res.run, res.err = store.GetLatestRun(tx, cmd.key)
	case CommandPing:
		res.err = store.Ping(tx)
	default:
		res.err = fmt.Errorf("unknown command %d", cmd.kind)
	}

	if res.err != nil && errors.Is(cmd.ctx.Err(), context.DeadlineExceeded) {
		res.err = fmt.Errorf("%w: %w", apierrors.ErrCommandTimeout, res.err)
	}
	if res.err != nil && !errors.Is(res.err, apierrors.ErrNoRunAvailable) {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, cmd.kind.String()+" failed")
	}

	cmd.reply <- res
	return res.err
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", apierrors.ErrCommandTimeout, ctx.Err())
	}
	return ctx.Err()
}

func isBadConn(err error) bool {
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}
