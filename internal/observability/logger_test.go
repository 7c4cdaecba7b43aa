package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cansyan/dock/internal/config"
)

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "dock",
	}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("panel attached", zap.String("title", "Files"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"logger":"dock"`)
	assert.Contains(t, out, `"title":"Files"`)
}

func TestNewLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggerConfig{Level: "warn", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dock.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, nil)
	require.NoError(t, err)

	logger.Info("restore layout", zap.Int("widgets", 4))
	require.NoError(t, logger.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"restore layout"`)
	assert.Contains(t, string(b), `"widgets":4`)
}

func TestNewLoggerNoOutput(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "info"}, nil)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger(config.LoggerConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}
