package server

import (
	"sync"

	"github.com/chillax-ai/codemap/internal/playback"
)

// FrameStore retains the most recent highlight frame so the API can
// report the current highlight state to late-joining clients. It is the
// in-process half of the diagram-rendering collaborator; the Electron
// shell mirrors the same frames from the SSE stream.
type FrameStore struct {
	mu      sync.RWMutex
	current *playback.Frame
}

// NewFrameStore creates an empty FrameStore.
func NewFrameStore() *FrameStore {
	return &FrameStore{}
}

// Apply stores the frame as the current highlight state.
func (f *FrameStore) Apply(frame playback.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = &frame
}

// Clear drops the current frame, returning the diagram to neutral.
func (f *FrameStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
}

// Current returns the latest frame, or nil when nothing is highlighted.
func (f *FrameStore) Current() *playback.Frame {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

var _ playback.Highlighter = (*FrameStore)(nil)
