package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSetupLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "aniverse.log")

	logger, closeFn, err := SetupLogger(&config.LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)
	t.Cleanup(func() { closeFn() })

	For(logger, "jikan").Debug("fetch complete", "count", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"fetch complete"`)
	assert.Contains(t, line, `"count":3`)
	assert.Contains(t, line, `"app":"aniverse"`)
	assert.Contains(t, line, `"component":"jikan"`)
}

func TestSetupLogger_TruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aniverse.log")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxFileSize+1), 0644))

	logger, closeFn, err := SetupLogger(&config.LoggingConfig{File: path})
	require.NoError(t, err)
	t.Cleanup(func() { closeFn() })

	logger.Info("fresh")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(MaxFileSize))
}

func TestSetupLogger_EmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := SetupLogger(&config.LoggingConfig{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeFn())
}
