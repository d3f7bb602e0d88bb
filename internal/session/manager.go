package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/msarayu20/movie-catalog/internal/debounce"
	"github.com/msarayu20/movie-catalog/internal/metrics"
	"github.com/msarayu20/movie-catalog/internal/query"
)

// Config tunes session lifetime and input coalescing.
type Config struct {
	// TTL is how long an untouched session survives before the sweeper
	// evicts it.
	TTL time.Duration
	// SearchDebounce is the quiet period a staged search term must
	// survive before it commits.
	SearchDebounce time.Duration
	// Clock drives the debounce timers. Nil selects the system clock;
	// tests inject a manual one.
	Clock debounce.Clock
}

const (
	defaultTTL            = 30 * time.Minute
	defaultSearchDebounce = 300 * time.Millisecond
)

// Manager owns the live sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg    Config
	genres []string
	logger zerolog.Logger
	now    func() time.Time
}

// NewManager returns a Manager validating genre transitions against the
// given canonical genre names.
func NewManager(cfg Config, genres []string, logger zerolog.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = debounce.SystemClock()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		genres:   append([]string(nil), genres...),
		logger:   logger.With().Str("component", "sessions").Logger(),
		now:      time.Now,
	}
}

// Create opens a session whose model starts from the given query
// string, decoded leniently; pass "" for a fully default model.
func (m *Manager) Create(rawQuery string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		model:     query.FromURL(rawQuery, m.genres),
		debouncer: debounce.New(m.cfg.Clock, m.cfg.SearchDebounce),
		genres:    m.genres,
		lastSeen:  m.now(),
	}
	s.logger = m.logger.With().Str("session_id", s.ID).Logger()

	m.mu.Lock()
	m.sessions[s.ID] = s
	active := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(active))
	m.logger.Debug().Str("session_id", s.ID).Int("active", active).Msg("session created")
	return s
}

// Get returns the session and marks it as recently used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.touch(m.now())
	return s, true
}

// Delete removes the session, cancelling any staged search.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	active := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.close()
	metrics.ActiveSessions.Set(float64(active))
	m.logger.Debug().Str("session_id", id).Int("active", active).Msg("session deleted")
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts idle sessions every interval until ctx is cancelled.
// Run it on its own goroutine.
func (m *Manager) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.evictIdle(m.now()); n > 0 {
				m.logger.Debug().Int("evicted", n).Msg("evicted idle sessions")
			}
		}
	}
}

func (m *Manager) evictIdle(now time.Time) int {
	m.mu.Lock()
	var victims []*Session
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.cfg.TTL {
			delete(m.sessions, id)
			victims = append(victims, s)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, s := range victims {
		s.close()
	}
	if len(victims) > 0 {
		metrics.ActiveSessions.Set(float64(active))
	}
	return len(victims)
}
