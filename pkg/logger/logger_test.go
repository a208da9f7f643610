package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := NewWithConfig(Config{
		Name:   "test",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: &buf,
	})
	return log, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestInfoIncludesPackageName(t *testing.T) {
	log, buf := newBufferLogger(t)

	log.Info("hello", "key", "value")

	entry := decodeLine(t, buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["package"])
	assert.Equal(t, "value", entry["key"])
}

func TestFunctionAndFileChaining(t *testing.T) {
	log, buf := newBufferLogger(t)

	log.File("widget").Function("DoThing").Info("working")

	entry := decodeLine(t, buf)
	assert.Equal(t, "widget", entry["file"])
	assert.Equal(t, "DoThing", entry["function"])
}

func TestErrReturnsOriginalError(t *testing.T) {
	log, buf := newBufferLogger(t)

	original := errors.New("boom")
	returned := log.Err("operation failed", original, "attempt", 1)

	assert.Same(t, original, returned)
	entry := decodeLine(t, buf)
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}

func TestErrMsgCreatesError(t *testing.T) {
	log, _ := newBufferLogger(t)

	err := log.ErrMsg("something went wrong")

	require.Error(t, err)
	assert.Equal(t, "something went wrong", err.Error())
}

func TestErrorWithTypeWrapsSentinel(t *testing.T) {
	log, _ := newBufferLogger(t)

	sentinel := errors.New("sentinel")
	err := log.ErrorWithType(sentinel, "context message")

	assert.ErrorIs(t, err, sentinel)
}

func TestTraceFromContext(t *testing.T) {
	log, buf := newBufferLogger(t)

	ctx := ContextWithTraceID(context.Background(), "trace-123")
	log.TraceFromContext(ctx).Info("traced")

	entry := decodeLine(t, buf)
	assert.Equal(t, "trace-123", entry["traceID"])
}

func TestTraceFromContextMissingIsNoop(t *testing.T) {
	log, buf := newBufferLogger(t)

	log.TraceFromContext(context.Background()).Info("untraced")

	entry := decodeLine(t, buf)
	_, hasTrace := entry["traceID"]
	assert.False(t, hasTrace)
}
