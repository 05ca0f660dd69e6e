package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all codemap server configuration.
// Priority: env vars > settings.json > defaults.
type Config struct {
	ListenAddr   string `json:"listen_addr"`
	AnalyzerURL  string `json:"analyzer_url"`
	RefreshCron  string `json:"refresh_cron"`
	CanvasWidth  int    `json:"canvas_width"`
	CanvasHeight int    `json:"canvas_height"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
}

func defaultConfig() Config {
	return Config{
		ListenAddr:   ":4600",
		RefreshCron:  "*/5 * * * *",
		CanvasWidth:  1200,
		CanvasHeight: 800,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

func codemapDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codemap"
	}
	return filepath.Join(home, ".codemap")
}

func settingsPath() string {
	return filepath.Join(codemapDir(), "settings.json")
}

func loadConfig() Config {
	cfg := defaultConfig()

	// Layer 2: settings.json (ignore if missing).
	if data, err := os.ReadFile(settingsPath()); err == nil {
		_ = json.Unmarshal(data, &cfg)
	}

	// Layer 3: env vars override.
	if v := os.Getenv("CODEMAP_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CODEMAP_ANALYZER_URL"); v != "" {
		cfg.AnalyzerURL = v
	}
	if v := os.Getenv("CODEMAP_REFRESH_CRON"); v != "" {
		cfg.RefreshCron = v
	}
	if v := os.Getenv("CODEMAP_CANVAS_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CanvasWidth = n
		}
	}
	if v := os.Getenv("CODEMAP_CANVAS_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CanvasHeight = n
		}
	}
	if v := os.Getenv("CODEMAP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CODEMAP_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}
