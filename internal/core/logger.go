package core

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger replaces the global logger with one honoring the configured level.
func NewLogger(logLevel string) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		zap.L().Fatal("Invalid log level", zap.String("log_level", logLevel), zap.Error(err))
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}

	zap.ReplaceGlobals(logger)
}
