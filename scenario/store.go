package scenario

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"
	"github.com/tifye/climateclock/assert"
)

// Store keeps one Session per cookie-session ID. Sessions idle past the TTL
// are evicted; state is process-local and gone on restart, which is the
// intended lifetime.
type Store struct {
	logger *log.Logger

	mu       sync.Mutex
	sessions *gocache.Cache
}

func NewStore(logger *log.Logger, ttl time.Duration) *Store {
	assert.AssertNotNil(logger)
	assert.Assert(ttl > 0, "session ttl must be positive")
	return &Store{
		logger:   logger,
		sessions: gocache.New(ttl, ttl/2),
	}
}

// Session returns the session for id, creating one with default state on
// first sight. Every access refreshes the idle TTL.
func (s *Store) Session(id string) *Session {
	assert.AssertNotEmpty(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.sessions.Get(id); ok {
		sess := v.(*Session)
		s.sessions.SetDefault(id, sess)
		return sess
	}

	sess := NewSession()
	s.sessions.SetDefault(id, sess)
	s.logger.Debug("new session", "id", id)
	return sess
}

// SessionIDs lists the IDs of all live sessions.
func (s *Store) SessionIDs() []string {
	items := s.sessions.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of live sessions, expired ones included until
// the next sweep.
func (s *Store) Count() int {
	return s.sessions.ItemCount()
}

// Purge drops every session and returns how many were live.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.sessions.ItemCount()
	s.sessions.Flush()
	return n
}
