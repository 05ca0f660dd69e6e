package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chillax-ai/codemap/internal/filter"
	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/internal/playback"
	"github.com/chillax-ai/codemap/internal/refresh"
	"github.com/chillax-ai/codemap/internal/scene"
	"github.com/chillax-ai/codemap/internal/server"
	"github.com/chillax-ai/codemap/internal/streaming"
	"github.com/chillax-ai/codemap/internal/workspace"
	codemapmcp "github.com/chillax-ai/codemap/pkg/mcp"
	"github.com/chillax-ai/codemap/pkg/schema"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		printVersion()
		return
	}

	mcpMode := flag.Bool("mcp", false, "serve the MCP stdio transport instead of HTTP")
	flag.Parse()

	cfg := loadConfig()
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *mcpMode); err != nil {
		logger.Error("codemap exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func run(ctx context.Context, cfg Config, logger *slog.Logger, mcpMode bool) error {
	validator, err := schema.NewValidator()
	if err != nil {
		return fmt.Errorf("compile schemas: %w", err)
	}
	selector, err := filter.NewSelector()
	if err != nil {
		return fmt.Errorf("build filter engines: %w", err)
	}

	hub := streaming.NewMemoryHub()
	frames := server.NewFrameStore()

	bounds := graph.Bounds{
		Width:  float64(cfg.CanvasWidth),
		Height: float64(cfg.CanvasHeight),
	}
	callbacks := scene.Callbacks{
		OnFileSelect: func(path string) {
			_ = hub.Publish(ctx, streaming.StreamEvent{
				EventType: streaming.EventNodeSelected,
				File:      path,
				Payload:   map[string]any{"kind": "module"},
			})
		},
		OnFunctionClick: func(path string) {
			_ = hub.Publish(ctx, streaming.StreamEvent{
				EventType: streaming.EventNodeSelected,
				File:      path,
				Payload:   map[string]any{"kind": "member"},
			})
		},
	}

	ws := workspace.New(workspace.Deps{
		Scene:      scene.NewScene(bounds, callbacks, logger),
		Controller: playback.NewController(frames, hub, logger),
		Validator:  validator,
		Selector:   selector,
		Hub:        hub,
		Logger:     logger,
	})

	if cfg.AnalyzerURL != "" {
		source := refresh.NewHTTPSource(cfg.AnalyzerURL, validator)
		refresher, err := refresh.NewRefresher(source, ws, cfg.RefreshCron, logger)
		if err != nil {
			return fmt.Errorf("build refresher: %w", err)
		}
		if err := refresher.Start(ctx); err != nil {
			return fmt.Errorf("start refresher: %w", err)
		}
		defer refresher.Stop()
		logger.Info("refresher scheduled",
			slog.String("analyzer_url", cfg.AnalyzerURL),
			slog.String("cron", cfg.RefreshCron))
	}

	if mcpMode {
		return runMCP(ctx, ws, hub, logger)
	}
	return runHTTP(ctx, cfg, ws, frames, hub, logger)
}

func runHTTP(ctx context.Context, cfg Config, ws *workspace.Workspace, frames *server.FrameStore, hub streaming.EventHub, logger *slog.Logger) error {
	srv := server.NewServer(server.Deps{
		Workspace: ws,
		Frames:    frames,
		Hub:       hub,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.ListenAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, ws *workspace.Workspace, hub streaming.EventHub, logger *slog.Logger) error {
	mcpServer := codemapmcp.NewCodemapServer(codemapmcp.CodemapServerDeps{
		Workspace: ws,
		Hub:       hub,
		Logger:    logger,
	})

	notifier := codemapmcp.NewPlaybackNotifier(mcpServer.MCPServer(), mcpServer.Sessions(), hub, logger)
	go func() {
		if err := notifier.Run(ctx); err != nil {
			logger.Warn("playback notifier stopped", slog.String("error", err.Error()))
		}
	}()

	logger.Info("mcp server listening on stdio")
	if err := mcpServer.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}
