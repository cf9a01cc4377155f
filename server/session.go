package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ezoic/caloriedash/nav"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "caloriedash_session"

type session struct {
	controller *nav.Controller
	lastSeen   time.Time
}

// SessionStore keeps one page controller per browser session.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	now      func() time.Time
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*session), now: time.Now}
}

// Get returns the controller for id. An unknown or malformed id starts a
// new session on Introduction; the returned id is the one to hand back to
// the client.
func (s *SessionStore) Get(id string) (uuid.UUID, *nav.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, err := uuid.Parse(id); err == nil {
		if sess, ok := s.sessions[key]; ok {
			sess.lastSeen = s.now()
			return key, sess.controller
		}
	}

	key := uuid.New()
	sess := &session{controller: nav.NewController(), lastSeen: s.now()}
	s.sessions[key] = sess
	return key, sess.controller
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were dropped.
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, key)
			n++
		}
	}
	return n
}
