package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level Level) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.Level(level)})
	return &slogLogger{l: slog.New(handler)}, buf
}

func TestLoggerEmitsStructuredFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	logger.Info("training progress", IterationKey, 3, LossKey, 0.25)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "training progress", record["msg"])
	assert.Equal(t, float64(3), record[IterationKey])
	assert.Equal(t, 0.25, record[LossKey])
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.NotZero(t, buf.Len())

	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestGetLoggerWithNameAddsComponent(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)
	SetLogger(logger)
	defer SetLogger(&slogLogger{l: slog.Default()})

	GetLoggerWithName("tree").Info("growing tree")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "tree", record[ComponentKey])
}

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ToLogLevel("debug"))
	assert.Equal(t, LevelWarn, ToLogLevel("warn"))
	assert.Equal(t, LevelInfo, ToLogLevel("unknown"))
}
