// Package log provides a structured logging interface for gboost training
// and inference operations.
//
// The package defines a minimal, slog-compatible logging interface so the
// backend can be swapped without touching call sites, together with standard
// attribute keys for machine learning events (operation, data shape, loss).
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with log/slog.
//
// The interface supports method chaining through With, allowing creation of
// contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to avoid building expensive attribute values that would be
	// discarded.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values are compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Standard attribute keys. Using these across packages keeps the emitted
// JSON queryable.
const (
	// ModelNameKey identifies the model type. Examples: "Node", "Booster".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "train", "predict", "prune", "fit".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"

	// SamplesKey is the number of samples in the active range.
	SamplesKey = "data.samples"

	// DimensionsKey is the number of feature dimensions.
	DimensionsKey = "data.dimensions"

	// DepthKey is the remaining depth budget of a recursive call.
	DepthKey = "tree.depth"

	// LossKey is the current value of the training loss.
	LossKey = "train.loss"

	// IterationKey is the boosting iteration index.
	IterationKey = "train.iteration"
)
