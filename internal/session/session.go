// Package session maps user names to their Bot instances. Sessions are
// created lazily on first use and evicted after sitting idle for a TTL, so
// the registry stays bounded over the process lifetime.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/bot"
)

// Factory builds the Bot for a newly seen user name.
type Factory func(name string) (*bot.Bot, error)

type entry struct {
	bot      *bot.Bot
	lastSeen time.Time
}

// Store is an in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  Factory
	ttl      time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a Store whose sessions expire after sitting idle for ttl.
// A background janitor sweeps expired sessions until Close is called.
func NewStore(factory Factory, ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Get returns the user's Bot, creating it on first use. The store lock covers
// the whole check-then-create, so concurrent first requests for one user
// still construct a single Bot.
func (s *Store) Get(name string) (*bot.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.sessions[name]; exists {
		e.lastSeen = time.Now()
		return e.bot, nil
	}

	b, err := s.factory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for %s: %w", name, err)
	}
	s.sessions[name] = &entry{bot: b, lastSeen: time.Now()}
	return b, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the janitor. Live sessions are dropped with the process.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.evictIdle(now)
		}
	}
}

// evictIdle drops sessions whose last activity is older than the TTL.
func (s *Store) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, name)
		}
	}
}
