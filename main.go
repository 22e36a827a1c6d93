package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"badge/internal/configuration"
	"badge/internal/core"
	"badge/internal/database"
	"badge/internal/executor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)
	defer func() { _ = zap.L().Sync() }()

	profile := configuration.GetProfile(config.App.Profile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostname, _ := os.Hostname()
	instance := core.Instance{ID: uuid.New().String(), Hostname: hostname, Profile: profile}

	shutdownTracing, err := core.InitTracing(ctx, config.App, instance.ID)
	if err != nil {
		zap.L().Fatal("Failed to initialize tracing", zap.Error(err))
	}

	profiler, err := core.StartProfiling(config.App, hostname)
	if err != nil {
		zap.L().Fatal("Failed to start profiler", zap.Error(err))
	}

	db := database.InitDB(config.Database)

	pool := executor.NewPool(db, executor.ConfigFrom(config.Database))
	pool.Start()

	cache := core.NewCache(config.Cache)

	var eventsManager *core.EventsManager
	if profile.NeedsEvents() {
		eventsManager, err = core.NewEventsManager(ctx, config.Events)
		if err != nil {
			zap.L().Fatal("Failed to connect to the events broker", zap.String("provider", config.Events.Type), zap.Error(err))
		}
	}

	started := core.StartWorkers(ctx, profile, eventsManager, pool, config)

	if profile.HTTPServer {
		router := core.NewRouter(config, pool, cache, instance, started)
		if err := core.StartHTTPServer(ctx, config.App, router); err != nil {
			zap.L().Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	} else {
		zap.L().Info("Running in worker-only mode")
		<-ctx.Done()
	}

	zap.L().Info("Shutting down")

	started.Wait()
	if eventsManager != nil {
		eventsManager.Close()
	}
	pool.Stop()
	database.Close(db)

	if cache != nil {
		_ = cache.Close()
	}
	if profiler != nil {
		_ = profiler.Stop()
	}
	if err := shutdownTracing(context.Background()); err != nil {
		zap.L().Warn("Failed to flush traces", zap.Error(err))
	}
}
