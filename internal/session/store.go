package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const idLength = 12

// NewID creates a short alphanumeric identifier for sessions and challenges.
func NewID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(b)
}

type entry struct {
	mu sync.Mutex
	s  *duel.Session
}

// Store is the process-wide registry of live duel sessions. Lookups across
// sessions are fully concurrent; mutations of a single session are
// serialized through With so two near-simultaneous decisions cannot race on
// health or turn state. Nothing here is persisted: a restart abandons every
// in-flight duel.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Create registers a new session under its ID.
func (st *Store) Create(s *duel.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.ID]; ok {
		return ErrSessionExists
	}
	st.sessions[s.ID] = &entry{s: s}
	return nil
}

// With runs fn while holding the session's lock. fn receives the live
// session and may mutate it. Returns ErrSessionNotFound for unknown ids.
func (st *Store) With(id string, fn func(*duel.Session) error) error {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Delete removes a session from the registry. Goroutines already waiting on
// the session's lock still see the (settled) session value and no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Expired returns the ids of sessions whose current deadline passed. The
// scanner uses this to forfeit timed-out turns and to finish the
// post-resolution pacing window.
func (st *Store) Expired(now time.Time) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var ids []string
	for id, e := range st.sessions {
		e.mu.Lock()
		expired := !e.s.Settled && !e.s.Deadline.IsZero() && !now.Before(e.s.Deadline)
		e.mu.Unlock()
		if expired {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
