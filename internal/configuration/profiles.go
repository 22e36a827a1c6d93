package configuration

import (
	"fmt"

	"badge/internal/models"

	"go.uber.org/zap"
)

const (
	ProfileDefault = "default"
	ProfileAPI     = "api"
	ProfileWorker  = "worker"
)

// Profiles defines all available deployment profiles.
var Profiles = map[string]models.Profile{
	ProfileDefault: {
		Name:       ProfileDefault,
		HTTPServer: true,
		Workers: models.WorkerConfig{
			RunEvents:      models.WorkerModeAll,
			DatabaseHealth: models.WorkerModeAll,
		},
	},
	ProfileAPI: {
		Name:       ProfileAPI,
		HTTPServer: true,
		Workers: models.WorkerConfig{
			RunEvents:      models.WorkerModeDisabled,
			DatabaseHealth: models.WorkerModeAll,
		},
	},
	ProfileWorker: {
		Name:       ProfileWorker,
		HTTPServer: false,
		Workers: models.WorkerConfig{
			RunEvents:      models.WorkerModeAll,
			DatabaseHealth: models.WorkerModeDisabled,
		},
	},
}

// LookupProfile returns the profile by name. An empty name selects the default profile.
func LookupProfile(name string) (models.Profile, error) {
	if name == "" {
		name = ProfileDefault
	}

	profile, ok := Profiles[name]
	if !ok {
		return models.Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	if !profile.HTTPServer && !profile.Workers.AnyEnabled() {
		return models.Profile{}, fmt.Errorf("profile %q runs neither the HTTP server nor a worker", name)
	}
	return profile, nil
}

// GetProfile is LookupProfile for startup: an unknown or idle profile is fatal.
func GetProfile(name string) models.Profile {
	profile, err := LookupProfile(name)
	if err != nil {
		zap.L().Fatal("Unknown profile",
			zap.String("profile", name),
			zap.Error(err),
			zap.Strings("available_profiles", []string{ProfileDefault, ProfileAPI, ProfileWorker}))
	}

	zap.L().Info("Loaded profile", zap.String("profile", profile.Name))

	return profile
}
