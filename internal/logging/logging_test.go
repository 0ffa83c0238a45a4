package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestLoggerEmitsStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "info")

	l.Info(context.Background(), "cart updated", map[string]interface{}{"count": 3})

	entry := lastLine(t, &buf)
	assert.Equal(t, "cart updated", entry["message"])
	assert.Equal(t, "web", entry["component"])
	assert.Equal(t, float64(3), entry["count"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "warn")

	l.Info(context.Background(), "quiet", nil)
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "loud", nil)
	assert.NotZero(t, buf.Len())
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "chatty")

	l.Debug(context.Background(), "hidden", nil)
	assert.Zero(t, buf.Len())

	l.Info(context.Background(), "shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestErrorIncludesErr(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "info")

	l.Error(context.Background(), "lookup failed", assert.AnError, nil)

	entry := lastLine(t, &buf)
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestTraceIDFlowsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "info")

	ctx := WithTraceID(context.Background(), "trace-42")
	l.Info(ctx, "with trace", nil)

	entry := lastLine(t, &buf)
	assert.Equal(t, "trace-42", entry["trace_id"])

	assert.Equal(t, "", TraceIDFromContext(context.Background()))
	assert.NotEmpty(t, NewTraceID())
}

func TestLogRequest(t *testing.T) {
	var buf bytes.Buffer
	l := New("web", &buf, "info")

	l.LogRequest(context.Background(), "GET", "/menu", 200, 15*time.Millisecond)

	entry := lastLine(t, &buf)
	assert.Equal(t, "http request", entry["message"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
}
