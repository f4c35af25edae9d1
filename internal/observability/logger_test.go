package observability

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/knudmoeller/solar-system-rdf/internal/config"
)

func resetGlobalLogger() {
	globalLogger.Store(nil)
	once = sync.Once{}
}

func setupTestLogger(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	resetGlobalLogger()
	t.Cleanup(resetGlobalLogger)

	var buf bytes.Buffer
	initializeLogger(cfg, zapcore.AddSync(&buf))
	return &buf
}

func TestInitializeLoggerJSON(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "solar-system-rdf",
	})

	GetLogger().Info("graph written", zap.Int("triples", 442))
	require.NoError(t, GetLogger().Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "graph written", entry["msg"])
	assert.Equal(t, "solar-system-rdf", entry["logger"])
	assert.Equal(t, float64(442), entry["triples"])
}

func TestInitializeLoggerConsole(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "solar-system-rdf",
	})

	GetLogger().Info("hello")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hello")
	assert.False(t, json.Valid(buf.Bytes()), "console format should not be JSON")
}

func TestInitializeLoggerLevelFiltering(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "warn", Format: "json"})

	GetLogger().Debug("too quiet")
	GetLogger().Info("still too quiet")
	GetLogger().Warn("loud enough")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
}

func TestInitializeLoggerBadLevelFallsBackToInfo(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "shouting", Format: "json"})

	GetLogger().Debug("suppressed")
	GetLogger().Info("kept")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "kept")
}

func TestInitializeLoggerIsIdempotent(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "info", Format: "json"})

	var second bytes.Buffer
	initializeLogger(config.LoggerConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&second))

	GetLogger().Info("routed to the first writer")
	assert.Contains(t, buf.String(), "routed to the first writer")
	assert.Zero(t, second.Len())
}

func TestGetLoggerFallback(t *testing.T) {
	resetGlobalLogger()
	t.Cleanup(resetGlobalLogger)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Equal(t, "fallback", logger.Name())
}
