package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"badge/internal/badge"
	c "badge/internal/cache"
	"badge/internal/configuration"
	"badge/internal/events"
	"badge/internal/executor"
	m "badge/internal/middlewares"
	"badge/internal/models"
	"badge/internal/services"
	"badge/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Instance identifies this process on /mon/status.
type Instance struct {
	ID       string
	Hostname string
	Profile  models.Profile
}

// Workers holds the background components started for the profile. Fields are nil when the
// profile disables them.
type Workers struct {
	Consumer *events.RunConsumer
	Health   *workers.DatabaseHealthWorker
	wg       sync.WaitGroup
}

// Wait blocks until every started worker returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

func (w *Workers) consumerStatus() services.ConsumerStatus {
	if w == nil || w.Consumer == nil {
		return nil
	}
	return w.Consumer
}

func (w *Workers) healthStatus() services.HealthStatus {
	if w == nil || w.Health == nil {
		return nil
	}
	return w.Health
}

// StartWorkers launches the run events consumer and the database health worker. A consumer
// that cannot reach its broker stops the process.
func StartWorkers(
	ctx context.Context,
	profile models.Profile,
	eventsManager *EventsManager,
	exec executor.IExecutor,
	config models.Configuration,
) *Workers {
	started := &Workers{}

	if profile.Workers.RunEvents != models.WorkerModeDisabled {
		subscriber := eventsManager.GetSubscriber(configuration.EventsRunEvents)
		if subscriber == nil {
			zap.L().Fatal("No subscriber for run events", zap.String("topic_key", configuration.EventsRunEvents))
		}
		started.Consumer = events.NewRunConsumer(subscriber, exec, events.DefaultRetryDelay)
		startWorker(ctx, &started.wg, profile.Workers.RunEvents, "run_events", func(ctx context.Context) {
			if err := started.Consumer.Run(ctx); err != nil {
				zap.L().Fatal("Run events consumer failed", zap.Error(err))
			}
		})
	}

	if profile.Workers.DatabaseHealth != models.WorkerModeDisabled {
		started.Health = &workers.DatabaseHealthWorker{
			Executor:    exec,
			RunInterval: config.Database.HealthInterval,
		}
		startWorker(ctx, &started.wg, profile.Workers.DatabaseHealth, "database_health", started.Health.Start)
	}

	return started
}

func startWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	mode models.WorkerMode,
	workerName string,
	runWorker func(context.Context),
) {
	if mode == models.WorkerModeDisabled {
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWorker(ctx)
	}()
	zap.L().Info("Started worker", zap.String("worker", workerName))
}

// NewRouter builds the HTTP surface. POST /run is only mounted when a run token hash is set.
func NewRouter(
	config models.Configuration,
	exec executor.IExecutor,
	cache c.ICache,
	instance Instance,
	started *Workers,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", configuration.RunAuthHeader},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/mon", services.MonitoringService{
		Version:    config.App.Version,
		Hostname:   instance.Hostname,
		InstanceID: instance.ID,
		Profile:    instance.Profile.Name,
		Executor:   exec,
		Consumer:   started.consumerStatus(),
		Health:     started.healthStatus(),
	}.Routes())

	if config.App.RunTokenHash != "" {
		r.Mount("/run", services.RunService{
			Executor:  exec,
			TokenHash: config.App.RunTokenHash,
		}.Routes())
	} else {
		zap.L().Info("No run token hash configured, POST /run disabled")
	}

	r.Group(func(r chi.Router) {
		r.Use(m.RateLimit(cache, config.Cache.RateLimitPerMinute, config.App.TrustedProxies))
		r.Mount("/", services.BadgeService{
			Executor: exec,
			Renderer: badge.NewFlatRenderer(),
		}.Routes())
	})

	return otelhttp.NewHandler(r, configuration.AppName)
}

// StartHTTPServer serves until ctx is cancelled, then drains in-flight requests.
func StartHTTPServer(ctx context.Context, config models.AppConfiguration, handler http.Handler) error {
	server := &http.Server{
		Addr:         net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server starting", zap.String("addr", server.Addr))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	zap.L().Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
