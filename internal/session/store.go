package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/mind-engage/gpa-form/internal/gpa"
)

// Store keeps one form state per browser session in memory. Entries expire
// after the TTL without access; nothing outlives the process.
type Store struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, gpa.State]
}

func NewStore(ttl time.Duration) *Store {
	cache := ttlcache.New[string, gpa.State](
		ttlcache.WithTTL[string, gpa.State](ttl),
	)
	return &Store{cache: cache}
}

// Start runs the expiry janitor until Stop is called.
func (s *Store) Start() { go s.cache.Start() }

func (s *Store) Stop() { s.cache.Stop() }

// Open returns the state of session id, creating a fresh session when id is
// empty or unknown. The returned id may differ from the one passed in.
func (s *Store) Open(id string) (string, gpa.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if item := s.cache.Get(id); item != nil {
			return id, item.Value()
		}
	}
	id = uuid.NewString()
	st := gpa.NewState()
	s.cache.Set(id, st, ttlcache.DefaultTTL)
	return id, st
}

// Apply runs the actions against the session and stores the new state.
// An expired session starts again from an empty form.
func (s *Store) Apply(id string, actions ...gpa.Action) gpa.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := gpa.NewState()
	if item := s.cache.Get(id); item != nil {
		st = item.Value()
	}
	st = gpa.Reduce(st, actions...)
	s.cache.Set(id, st, ttlcache.DefaultTTL)
	return st
}

// Len reports the number of live sessions.
func (s *Store) Len() int { return s.cache.Len() }
