// Package playback sequences a precomputed execution trace against a
// rendered diagram: play/pause/step/reset with a configurable per-step
// delay, maintaining the highlighted trail. One controller owns at most
// one timer goroutine at a time; a generation counter makes every stale
// wakeup a no-op.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chillax-ai/codemap/internal/streaming"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// State is the controller's lifecycle state.
type State string

const (
	StateIdle    State = "idle"    // nothing shown, index −1
	StatePlaying State = "playing" // auto-advancing through steps
	StatePaused  State = "paused"  // holding at the last shown index
	StateDone    State = "done"    // ran past the final step
)

// Speed slider bounds, in milliseconds. The UI slider reads
// "faster → slower", so the effective delay is inverted:
// delay = (SliderMin + SliderMax) − v.
const (
	SliderMin = 200
	SliderMax = 2000
)

// Snapshot is a point-in-time view of the controller for the API.
type Snapshot struct {
	SessionID string `json:"session_id"`
	File      string `json:"file"`
	State     State  `json:"state"`
	Index     int    `json:"index"`
	Length    int    `json:"length"`
	Speed     int    `json:"speed"`
}

// Controller is the step playback state machine.
type Controller struct {
	mu          sync.Mutex
	applyMu     sync.Mutex // serializes frame applies and clears against generation bumps
	sessionID   string
	file        string
	steps       []schema.Step
	index       int
	state       State
	speed       int // raw slider value
	gen         uint64
	cancel      chan struct{} // closed to wake the active play loop early
	highlighter Highlighter
	hub         streaming.EventHub
	logger      *slog.Logger
}

// NewController creates a controller with no trace loaded. The hub may
// be nil when no one is listening (tests, gen-diagrams).
func NewController(h Highlighter, hub streaming.EventHub, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		index:       -1,
		state:       StateIdle,
		speed:       (SliderMin + SliderMax) / 2,
		highlighter: h,
		hub:         hub,
		logger:      logger,
	}
}

// Load replaces the trace wholesale: fresh session id, index −1, all
// highlighting cleared. Any running play loop is cancelled first.
func (c *Controller) Load(trace *schema.Trace) string {
	c.mu.Lock()
	c.cancelLocked()
	c.sessionID = uuid.New().String()
	if trace != nil {
		c.file = trace.File
		c.steps = trace.Steps
	} else {
		c.file = ""
		c.steps = nil
	}
	c.index = -1
	c.state = StateIdle
	id := c.sessionID
	c.mu.Unlock()

	c.clearFrame()
	c.publishState()
	return id
}

// Play starts (or resumes) auto-advance. From Done it restarts at the
// first step. No-op while already playing or with no trace loaded.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.state == StatePlaying || len(c.steps) == 0 {
		c.mu.Unlock()
		return
	}
	if c.state == StateDone {
		c.index = -1
	}
	c.state = StatePlaying
	c.gen++
	gen := c.gen
	cancel := make(chan struct{})
	c.cancel = cancel
	c.mu.Unlock()

	c.publishState()
	go c.playLoop(gen, cancel)
}

// playLoop advances one step per delay period until cancelled or done.
// The generation check makes a wakeup after cancellation a no-op.
func (c *Controller) playLoop(gen uint64, cancel <-chan struct{}) {
	for {
		c.mu.Lock()
		if c.gen != gen || c.state != StatePlaying {
			c.mu.Unlock()
			return
		}
		next := c.index + 1
		if next >= len(c.steps) {
			c.state = StateDone
			c.mu.Unlock()
			c.publishState()
			return
		}
		c.index = next
		frame := BuildFrame(c.steps, next)
		delay := c.delayLocked()
		c.mu.Unlock()

		c.applyFrame(gen, frame)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-cancel:
			timer.Stop()
			return
		}
	}
}

// Pause stops auto-advance, holding at the last shown index. The pending
// delay is cancelled synchronously before Pause returns.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.state = StatePaused
	c.mu.Unlock()
	c.publishState()
}

// StepForward cancels any active play loop and shows the next step.
// At the final step it is a no-op (the index holds).
func (c *Controller) StepForward() {
	c.mu.Lock()
	c.cancelLocked()
	if c.state == StatePlaying {
		c.state = StatePaused
	}
	next := c.index + 1
	if next >= len(c.steps) {
		c.mu.Unlock()
		return
	}
	c.index = next
	c.state = StatePaused
	frame := BuildFrame(c.steps, next)
	gen := c.gen
	c.mu.Unlock()

	c.applyFrame(gen, frame)
	c.publishState()
}

// Reset cancels any active loop, returns the index to −1, and clears all
// highlighting back to neutral.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.cancelLocked()
	c.index = -1
	c.state = StateIdle
	c.mu.Unlock()

	c.clearFrame()
	c.publishState()
}

// ShowStep jumps directly to step i. Out-of-range indices are ignored
// without error.
func (c *Controller) ShowStep(i int) {
	c.mu.Lock()
	if i < 0 || i >= len(c.steps) {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.state = StatePaused
	c.index = i
	frame := BuildFrame(c.steps, i)
	gen := c.gen
	c.mu.Unlock()

	c.applyFrame(gen, frame)
	c.publishState()
}

// SetSpeed records the slider value v. Values outside the slider range
// are clamped. Takes effect from the next inter-step delay.
func (c *Controller) SetSpeed(v int) {
	c.mu.Lock()
	if v < SliderMin {
		v = SliderMin
	}
	if v > SliderMax {
		v = SliderMax
	}
	c.speed = v
	c.mu.Unlock()
}

// Snapshot returns the current state for the API.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		SessionID: c.sessionID,
		File:      c.file,
		State:     c.state,
		Index:     c.index,
		Length:    len(c.steps),
		Speed:     c.speed,
	}
}

// delayLocked converts the slider value to the effective per-step delay.
// Deliberately (SliderMin + SliderMax) - v rather than SliderMax - v:
// both ends of the slider must map back into [SliderMin, SliderMax], so
// the fastest setting still yields a SliderMin delay instead of zero.
// Caller holds the lock.
func (c *Controller) delayLocked() time.Duration {
	ms := (SliderMin + SliderMax) - c.speed
	return time.Duration(ms) * time.Millisecond
}

// cancelLocked invalidates the active play loop generation and wakes its
// timer. Caller holds the lock; the stale loop observes the bumped
// generation and exits without touching state.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

// applyFrame hands the highlight pass to the rendering collaborator and
// announces the shown step. The generation is re-checked under applyMu:
// a Reset/Load/Pause that ran between the index commit and this call has
// bumped it, and the now-stale frame must not overwrite their clear.
func (c *Controller) applyFrame(gen uint64, frame Frame) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	stale := c.gen != gen
	c.mu.Unlock()
	if stale {
		return
	}

	if c.highlighter != nil {
		c.highlighter.Apply(frame)
	}
	c.publish(streaming.EventStepShown, frame)
	c.publish(streaming.EventHighlight, map[string]any{"index": frame.Index})
}

// clearFrame clears the collaborator under the same ordering lock as
// applyFrame, so a concurrent stale apply cannot land after the clear.
func (c *Controller) clearFrame() {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if c.highlighter != nil {
		c.highlighter.Clear()
	}
}

func (c *Controller) publishState() {
	c.publish(streaming.EventPlaybackState, c.Snapshot())
}

func (c *Controller) publish(eventType string, payload any) {
	if c.hub == nil {
		return
	}
	c.mu.Lock()
	sessionID, file := c.sessionID, c.file
	c.mu.Unlock()

	if err := c.hub.Publish(context.Background(), streaming.StreamEvent{
		SessionID: sessionID,
		File:      file,
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		c.logger.Error("failed to publish playback event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
