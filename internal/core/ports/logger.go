package ports

import (
	"context"

	"go.trai.ch/sackd/internal/core/domain"
)

// Logger defines the interface for diagnostic logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)

	// Configure applies the level, format and destination from the configuration.
	Configure(cfg domain.LogConfig) error

	// Attach returns a context carrying the logger so request-scoped code can log
	// through slogcontext.FromCtx.
	Attach(ctx context.Context) context.Context

	// Close releases a log file opened by Configure. Later records go to stderr.
	Close() error
}
