package core

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger replaces the global logger with a production logger at the given level.
func NewLogger(level string) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		zap.L().Warn("Invalid log level, keeping info", zap.String("level", level), zap.Error(err))
		atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	config := zap.NewProductionConfig()
	config.Level = atomicLevel
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}

	zap.ReplaceGlobals(logger)
}
