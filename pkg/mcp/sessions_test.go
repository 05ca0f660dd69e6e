package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionRegistry_RegisterAndLookup(t *testing.T) {
	r := NewSessionRegistry()

	r.Register("play-1", "session-abc")
	sid, ok := r.SessionFor("play-1")
	assert.True(t, ok)
	assert.Equal(t, "session-abc", sid)
}

func TestSessionRegistry_NotFound(t *testing.T) {
	r := NewSessionRegistry()

	_, ok := r.SessionFor("unknown")
	assert.False(t, ok)
}

func TestSessionRegistry_Overwrite(t *testing.T) {
	r := NewSessionRegistry()

	r.Register("play-1", "session-old")
	r.Register("play-1", "session-new")

	sid, ok := r.SessionFor("play-1")
	assert.True(t, ok)
	assert.Equal(t, "session-new", sid)
}

func TestSessionRegistry_Remove(t *testing.T) {
	r := NewSessionRegistry()

	r.Register("play-1", "session-abc")
	r.Register("play-2", "session-abc")
	r.Register("play-3", "session-xyz")

	r.Remove("session-abc")

	_, ok := r.SessionFor("play-1")
	assert.False(t, ok, "play-1 should be removed")

	_, ok = r.SessionFor("play-2")
	assert.False(t, ok, "play-2 should be removed")

	sid, ok := r.SessionFor("play-3")
	assert.True(t, ok, "play-3 should still exist")
	assert.Equal(t, "session-xyz", sid)
}
