package core

import (
	"badge/internal/configuration"
	"badge/internal/models"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// StartProfiling returns nil when profiling is disabled.
func StartProfiling(config models.AppConfiguration, hostname string) (*pyroscope.Profiler, error) {
	if !config.Profiling.Enabled {
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: configuration.AppName,
		ServerAddress:   config.Profiling.ServerAddress,
		Logger:          zap.L().Named("pyroscope").Sugar(),
		Tags: map[string]string{
			"hostname": hostname,
			"version":  config.Version,
			"profile":  config.Profile,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Continuous profiling enabled", zap.String("server_address", config.Profiling.ServerAddress))
	return profiler, nil
}
