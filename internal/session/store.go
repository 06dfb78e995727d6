// Package session holds the uploaded tables of each browser session.
//
// Nothing here is persisted: a workspace lives until it is idle for longer
// than the store's TTL, or until the process exits.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/table"
)

// ErrNoTable is returned when a section has nothing uploaded yet.
var ErrNoTable = errors.New("no table uploaded for this section")

type workspace struct {
	tables  map[section.Key]*table.Table
	touched time.Time
}

// Store maps session IDs to workspaces. It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger
	onEvict    func(id string)
	workspaces map[string]*workspace
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for eviction messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithEvictHook registers fn to run, outside the lock, for each session
// removed by Sweep.
func WithEvictHook(fn func(id string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

// NewStore creates a store that evicts workspaces idle for longer than ttl.
// A zero ttl disables eviction.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		ttl:        ttl,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
		workspaces: make(map[string]*workspace),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lookup returns the workspace for id, creating it if asked. Callers hold mu.
func (s *Store) lookup(id string, create bool) *workspace {
	ws, ok := s.workspaces[id]
	if !ok {
		if !create {
			return nil
		}
		ws = &workspace{tables: make(map[section.Key]*table.Table)}
		s.workspaces[id] = ws
	}
	ws.touched = s.now()
	return ws
}

// Get returns a copy of the table uploaded for key, if any.
func (s *Store) Get(id string, key section.Key) (*table.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.lookup(id, false)
	if ws == nil {
		return nil, false
	}
	t, ok := ws.tables[key]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Put stores t as the table for key, replacing any previous upload.
func (s *Store) Put(id string, key section.Key, t *table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookup(id, true).tables[key] = t
}

// Update applies fn to the stored table for key and returns a copy of the
// result. fn runs under the store lock and must not retain t.
func (s *Store) Update(id string, key section.Key, fn func(t *table.Table) error) (*table.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.lookup(id, false)
	if ws == nil {
		return nil, ErrNoTable
	}
	t, ok := ws.tables[key]
	if !ok {
		return nil, ErrNoTable
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// Drop forgets a session.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.workspaces, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.workspaces)
}

// Sweep evicts idle workspaces and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	cutoff := s.now().Add(-s.ttl)
	var evicted []string
	for id, ws := range s.workspaces {
		if ws.touched.Before(cutoff) {
			delete(s.workspaces, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	if s.onEvict != nil {
		for _, id := range evicted {
			s.onEvict(id)
		}
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if s.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}
