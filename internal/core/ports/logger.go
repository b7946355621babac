// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/riagen/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}

// BuildLog is the per-pass logging surface with error, warning and message channels.
// Every generation pass owns its own BuildLog.
type BuildLog interface {
	Logger

	// Report records a structured diagnostic on the channel given by its severity.
	Report(d domain.Diagnostic)

	// HasLoggedErrors reports whether any error was recorded during the pass.
	HasLoggedErrors() bool

	// Diagnostics returns every recorded entry in order.
	Diagnostics() []domain.Diagnostic
}
