package core

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an unused session is kept.
const DefaultSessionTTL = 2 * time.Hour

// SessionStore keeps sessions by client id and template key.
type SessionStore struct {
	opts SessionOptions
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

type sessionKey struct {
	client   string
	template string
}

// NewSessionStore creates an empty store. ttl <= 0 uses DefaultSessionTTL.
func NewSessionStore(opts SessionOptions, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		opts:     opts.withDefaults(),
		ttl:      ttl,
		sessions: make(map[sessionKey]*Session),
	}
}

// Get returns the client's session for the template, creating it if needed.
func (st *SessionStore) Get(clientID string, tpl Template) *Session {
	key := sessionKey{client: clientID, template: tpl.Info().Key}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[key]; ok {
		s.touch()
		return s
	}
	s := NewSession(tpl, st.opts)
	st.sessions[key] = s
	return s
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions unused for longer than the TTL and returns how
// many were removed. Sessions that are parsing are kept.
func (st *SessionStore) Sweep() int {
	cutoff := st.opts.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for key, s := range st.sessions {
		if s.State() == StateParsing || s.LastUsed().After(cutoff) {
			continue
		}
		delete(st.sessions, key)
		removed++
	}
	return removed
}
