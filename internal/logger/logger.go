package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	return NewAtLevel(os.Getenv("LOG_LEVEL"))
}

// NewAtLevel builds the production logger at the given level name,
// falling back to info when the name is not recognized
func NewAtLevel(level string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("GROWTH_ENV")) == "dev" {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "GROWTH_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("GROWTH_ENV"),
		}))
		logger, err = cfg.Build(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// gin's Context resolves string keys set with c.Set, so the same key
// works for both gin and plain contexts
const ContextKey = "LOGGER"

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(ContextKey).(*zap.SugaredLogger); ok && logger != nil {
			return logger
		}
	}
	logger := zap.S()
	logger.Debug("no logger found in ctx - using global logger")
	return logger
}

func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, logger) //nolint:staticcheck
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
