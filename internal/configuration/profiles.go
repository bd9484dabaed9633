package configuration

import (
	"api/internal/models"

	"go.uber.org/zap"
)

const (
	ProfileDefault = "default"
	ProfileAPI     = "api"
	ProfileWorker  = "worker"
)

// Profiles defines all available deployment profiles.
var Profiles = map[string]models.AppProfile{
	ProfileDefault: {
		Name:       ProfileDefault,
		HTTPServer: true,
		Workers: models.WorkerConfig{
			WeeklyDigest: models.WorkerModeSingleton,
		},
	},
	ProfileAPI: {
		Name:       ProfileAPI,
		HTTPServer: true,
		Workers: models.WorkerConfig{
			WeeklyDigest: models.WorkerModeDisabled,
		},
	},
	ProfileWorker: {
		Name:       ProfileWorker,
		HTTPServer: false,
		Workers: models.WorkerConfig{
			WeeklyDigest: models.WorkerModeSingleton,
		},
	},
}

// GetProfile returns the profile by name. Returns the default profile if name is empty.
func GetProfile(name string) models.AppProfile {
	if name == "" {
		name = ProfileDefault
	}

	profile, ok := Profiles[name]

	if !ok {
		zap.L().Fatal("Unknown profile",
			zap.String("profile", name),
			zap.Strings("available_profiles", []string{ProfileDefault, ProfileAPI, ProfileWorker}))
	}

	zap.L().Info("Loaded profile", zap.String("profile", profile.Name))

	return profile
}
