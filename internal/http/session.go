package http

import (
	nethttp "net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-shelter-triage-board/internal/triage"
)

const sessionCookie = "triage_session"

// maxSessions caps the in-memory session map. Cookie-less traffic (crawlers,
// health probes) mints a session per request; when the cap is reached the
// least recently seen session is dropped.
const maxSessions = 10000

type sessionEntry struct {
	state    *triage.FilterState
	lastSeen time.Time
}

// sessionStore keeps per-session FilterState in memory. State is owned by
// its session and mutated only through these methods; it persists until the
// process exits or the session is evicted, never longer.
type sessionStore struct {
	mu     sync.Mutex
	states map[string]*sessionEntry
}

func newSessionStore() *sessionStore {
	return &sessionStore{states: make(map[string]*sessionEntry)}
}

// ensure returns the session id for the request, minting a cookie and a
// default FilterState (all animal types) for first-time visitors.
func (s *sessionStore) ensure(w nethttp.ResponseWriter, r *nethttp.Request) string {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if entry, ok := s.states[id]; ok {
			entry.lastSeen = time.Now()
			return id
		}
	}

	if len(s.states) >= maxSessions {
		s.evictOldestLocked()
	}

	id = uuid.NewString()
	s.states[id] = &sessionEntry{state: &triage.FilterState{}, lastSeen: time.Now()}
	nethttp.SetCookie(w, &nethttp.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	return id
}

func (s *sessionStore) evictOldestLocked() {
	oldestID := ""
	var oldest time.Time
	for id, entry := range s.states {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID = id
			oldest = entry.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.states, oldestID)
	}
}

// state returns a copy of the session's FilterState.
func (s *sessionStore) state(id string) triage.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[id]
	if !ok {
		return triage.FilterState{}
	}
	out := triage.FilterState{SelectedID: entry.state.SelectedID}
	if entry.state.AnimalTypes != nil {
		out.AnimalTypes = append([]string{}, entry.state.AnimalTypes...)
	}
	return out
}

// setFilters replaces the selected animal-type set. nil resets to the
// default "all types" selection; an empty slice selects nothing.
func (s *sessionStore) setFilters(id string, types []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[id]
	if !ok {
		return
	}
	entry.state.AnimalTypes = types
}

func (s *sessionStore) setSelection(id, selectedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.states[id]; ok {
		entry.state.SelectedID = selectedID
	}
}

func (s *sessionStore) clearSelection(id string) {
	s.setSelection(id, "")
}
