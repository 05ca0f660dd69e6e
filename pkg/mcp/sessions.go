package mcp

import "sync"

// SessionRegistry maps playback session IDs to MCP session IDs.
// Populated when an agent loads a trace, so playback notifications can
// be pushed back to the client that owns the session.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]string // playback session ID → MCP session ID
}

// NewSessionRegistry creates a new empty SessionRegistry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]string)}
}

// Register associates a playback session with an MCP session.
// Loading a new trace in the same client overwrites the old mapping.
func (r *SessionRegistry) Register(playbackSession, mcpSession string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[playbackSession] = mcpSession
}

// SessionFor returns the MCP session for the given playback session.
func (r *SessionRegistry) SessionFor(playbackSession string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.sessions[playbackSession]
	return sid, ok
}

// Remove deletes all playback mappings for the given MCP session ID.
// Called when a client disconnects.
func (r *SessionRegistry) Remove(mcpSession string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pid, sid := range r.sessions {
		if sid == mcpSession {
			delete(r.sessions, pid)
		}
	}
}
