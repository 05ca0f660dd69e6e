// Package refresh re-pulls the analysis result on a cron schedule and
// swaps it into the scene, so a map loaded from an external analyzer
// stays current without manual reloads.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// Source produces a fresh analysis result, typically by re-invoking the
// external analyzer.
type Source interface {
	Fetch(ctx context.Context) (*schema.AnalysisResult, error)
}

// Applier receives the refreshed analysis. Satisfied by the workspace,
// so a refresh announces model.replaced the same way a manual load does.
type Applier interface {
	ApplyAnalysis(ctx context.Context, result *schema.AnalysisResult) *graph.Model
}

// Refresher runs Fetch on a cron schedule and applies the result.
type Refresher struct {
	source   Source
	applier  Applier
	schedule cron.Schedule
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
	mu       sync.Mutex

	inflightMu sync.Mutex
	inflight   bool // a fetch is currently executing (dedup)
}

// NewRefresher creates a Refresher for the given cron expression using
// the standard five-field format.
func NewRefresher(source Source, applier Applier, cronExpr string, logger *slog.Logger) (*Refresher, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}
	return &Refresher{
		source:   source,
		applier:  applier,
		schedule: schedule,
		logger:   logger,
	}, nil
}

// Start launches the background refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.done != nil {
		r.mu.Unlock()
		return fmt.Errorf("refresher already started")
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.loop(refreshCtx)
	r.logger.Info("refresher started")
	return nil
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.tick(ctx)
		}
	}
}

// tick runs one fetch-and-apply cycle. Overlapping cycles are dropped:
// if a slow fetch is still running when the next trigger fires, the
// trigger is skipped rather than queued.
func (r *Refresher) tick(ctx context.Context) {
	if !r.tryAcquire() {
		r.logger.Warn("refresh still in flight, skipping trigger")
		return
	}
	defer r.release()

	result, err := r.source.Fetch(ctx)
	if err != nil {
		r.logger.Error("refresh fetch failed", slog.String("error", err.Error()))
		return
	}
	if result == nil {
		return
	}

	model := r.applier.ApplyAnalysis(ctx, result)
	r.logger.Info("analysis refreshed",
		slog.String("revision", model.Revision),
		slog.Int("modules", len(result.Modules)))
}

// RefreshNow runs one cycle immediately, outside the cron schedule.
func (r *Refresher) RefreshNow(ctx context.Context) {
	r.tick(ctx)
}

// NextRun reports when the schedule will next fire after from.
func (r *Refresher) NextRun(from time.Time) time.Time {
	return r.schedule.Next(from)
}

func (r *Refresher) tryAcquire() bool {
	r.inflightMu.Lock()
	defer r.inflightMu.Unlock()
	if r.inflight {
		return false
	}
	r.inflight = true
	return true
}

func (r *Refresher) release() {
	r.inflightMu.Lock()
	defer r.inflightMu.Unlock()
	r.inflight = false
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel == nil {
		return nil
	}

	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil

	r.logger.Info("refresher stopped")
	return nil
}
