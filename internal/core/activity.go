package core

import (
	"api/internal/activity"
	"api/internal/models"

	"go.uber.org/zap"
)

func NewActivityLogger(config models.ActivityConfiguration) activity.IActivityLogger {
	switch config.Type {
	case "filesystem":
		return activity.NewFilesystemClient(config)
	default:
		zap.L().Fatal("Unknown activity backend", zap.String("type", config.Type))
		return nil
	}
}
