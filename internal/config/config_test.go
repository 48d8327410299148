package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, SourceJikan, cfg.Source.Mode)
	assert.Equal(t, 20, cfg.Source.Limit)
	assert.Equal(t, 3*time.Second, cfg.Ticker.Period)
	assert.Equal(t, "home", cfg.UI.DefaultView)
}

func TestLoadConfigFrom_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
source:
  mode: market
  limit: 10
ticker:
  period: 500ms
ui:
  default_view: catalog
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, SourceMarket, cfg.Source.Mode)
	assert.Equal(t, 10, cfg.Source.Limit)
	assert.Equal(t, 500*time.Millisecond, cfg.Ticker.Period)
	assert.Equal(t, "catalog", cfg.UI.DefaultView)
	// Untouched keys keep their defaults
	assert.Equal(t, "https://api.jikan.moe/v4", cfg.Source.BaseURL)
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	t.Setenv("ANIVERSE_SOURCE_MODE", "static")
	t.Setenv("ANIVERSE_TICKER_PERIOD", "1s")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, SourceStatic, cfg.Source.Mode)
	assert.Equal(t, time.Second, cfg.Ticker.Period)
}

func TestLoadConfigFrom_UnknownMode(t *testing.T) {
	t.Setenv("ANIVERSE_SOURCE_MODE", "nasdaq")

	_, err := LoadConfigFrom(t.TempDir())
	assert.Error(t, err)
}

func TestValidate_ClampsLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Limit = 500

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Source.Limit)
}

func TestSaveConfigTo_Reloads(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Source.Mode = SourceMarket
	cfg.Player.Command = "mpv"
	cfg.Ticker.Period = 2 * time.Second

	require.NoError(t, SaveConfigTo(cfg, dir))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, SourceMarket, loaded.Source.Mode)
	assert.Equal(t, "mpv", loaded.Player.Command)
	assert.Equal(t, 2*time.Second, loaded.Ticker.Period)
}
