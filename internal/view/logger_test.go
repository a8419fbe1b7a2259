package view_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/limaJavier/eligibility/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLogger(vt view.ViewType, level view.LogLevel) (*bytes.Buffer, *bytes.Buffer, view.Logger) {
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	viewer := view.NewViewer(vt, view.NewStream(out), logs, level)
	return out, logs, viewer.Logger()
}

func TestHumanLogger_Debug(t *testing.T) {
	out, logs, logger := setupLogger(view.ViewHuman, view.LogLevelDebug)
	logger.Debug("test debug message", "courses", 3)

	assert.Contains(t, logs.String(), "DEBUG")
	assert.Contains(t, logs.String(), "test debug message")
	assert.Empty(t, out.String())
}

func TestHumanLogger_InfoLevelFiltersDebug(t *testing.T) {
	_, logs, logger := setupLogger(view.ViewHuman, view.LogLevelInfo)

	logger.Debug("debug message")
	logger.Info("info message")

	assert.NotContains(t, logs.String(), "debug message")
	assert.Contains(t, logs.String(), "info message")
}

func TestHumanLogger_SilentLevelFiltersAll(t *testing.T) {
	_, logs, logger := setupLogger(view.ViewHuman, view.LogLevelSilent)

	logger.Error("error message")

	assert.Empty(t, logs.String())
}

func TestJSONView_LogsAreStructured(t *testing.T) {
	_, logs, logger := setupLogger(view.ViewJSON, view.LogLevelWarn)

	logger.Info("info message")
	logger.Warn("warn message", "course", "CSC10300")

	var record map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "warn message", record["msg"])
	assert.Equal(t, "CSC10300", record["course"])
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]view.LogLevel{
		"":       view.LogLevelSilent,
		"silent": view.LogLevelSilent,
		"DEBUG":  view.LogLevelDebug,
		"info":   view.LogLevelInfo,
		"warn":   view.LogLevelWarn,
		"error":  view.LogLevelError,
	}
	for name, expected := range tests {
		level, err := view.ParseLogLevel(name)
		assert.NoError(t, err)
		assert.Equal(t, expected, level, name)
	}

	_, err := view.ParseLogLevel("verbose")
	assert.Error(t, err)
}
