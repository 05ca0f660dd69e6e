package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, ":4600", cfg.ListenAddr)
	assert.Equal(t, "*/5 * * * *", cfg.RefreshCron)
	assert.Equal(t, 1200, cfg.CanvasWidth)
	assert.Equal(t, 800, cfg.CanvasHeight)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.AnalyzerURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // no settings.json
	t.Setenv("CODEMAP_LISTEN_ADDR", ":9999")
	t.Setenv("CODEMAP_ANALYZER_URL", "http://localhost:5000/analysis")
	t.Setenv("CODEMAP_CANVAS_WIDTH", "640")
	t.Setenv("CODEMAP_LOG_FORMAT", "json")

	cfg := loadConfig()
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5000/analysis", cfg.AnalyzerURL)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, "json", cfg.LogFormat)
	// Untouched fields keep their defaults.
	assert.Equal(t, 800, cfg.CanvasHeight)
}

func TestLoadConfigBadNumbersIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CODEMAP_CANVAS_WIDTH", "not-a-number")
	t.Setenv("CODEMAP_CANVAS_HEIGHT", "-10")

	cfg := loadConfig()
	assert.Equal(t, 1200, cfg.CanvasWidth)
	assert.Equal(t, 800, cfg.CanvasHeight)
}
