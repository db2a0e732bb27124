package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"

	"storeinsight/internal/config"
)

func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	var console bytes.Buffer
	logger, file, err := NewLogger(cfg, &console)
	require.NoError(t, err)
	require.NotNil(t, file)

	logger.Info("test message", "key", "value")
	require.NoError(t, file.Close())
	assert.Empty(t, console.String())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
}

func TestNewLogger_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json output",
			format: "json",
			level:  "info",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, `"msg":"hello"`)
			},
		},
		{
			name:   "text output",
			format: "text",
			level:  "info",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "msg=hello")
			},
		},
		{
			name:   "level filters info",
			format: "json",
			level:  "warn",
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, file, err := NewLogger(config.LoggingConfig{Level: tt.level, Format: tt.format, Output: "console"}, &buf)
			require.NoError(t, err)
			assert.Nil(t, file)

			logger.Info("hello")
			tt.check(t, buf.String())
		})
	}
}

func TestNewLogger_BothOutputs(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, file, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "both", FilePath: logFile}, &buf)
	require.NoError(t, err)
	require.NotNil(t, file)

	logger.Warn("dual")
	require.NoError(t, file.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dual")
	assert.Contains(t, buf.String(), "dual")
}

func TestCorrelationIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)

	tp := trace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx := WithRunID(context.Background(), "run-123")
	ctx, span := tp.Tracer("test").Start(ctx, "op")
	logger.InfoContext(ctx, "with ids")
	span.End()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-123", entry["run_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])

	buf.Reset()
	logger.Info("without ids")
	assert.False(t, strings.Contains(buf.String(), "run_id"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input).String())
		})
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRunID(ctx))

	runID := GenerateRunID()
	assert.Len(t, runID, 36)
	assert.Equal(t, runID, GetRunID(WithRunID(ctx, runID)))
	assert.NotEqual(t, runID, GenerateRunID())
}
