// Package favorites persists the set of favorited movie ids. The set
// lives under a single key in a SQLite kv table, stored as a JSON array
// so the value stays portable and inspectable.
//
// Persistence is best effort: a failed read starts the store empty, a
// failed write keeps the in-memory toggle anyway, and neither ever
// surfaces as an error to callers. The visible state must always follow
// the user's last action even when the disk does not.
package favorites

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/msarayu20/movie-catalog/internal/metrics"
)

// storageKey is the fixed kv key the id set is persisted under.
const storageKey = "movie-favorites"

// Store is the persisted favorite set. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	ids    map[int64]struct{}
	db     *sql.DB
	logger zerolog.Logger
}

// Open loads the persisted set from the SQLite database at dbPath.
// Open never fails: any storage error degrades the store to a
// memory-only set, logged once here.
func Open(dbPath string, logger zerolog.Logger) *Store {
	s := &Store{
		ids:    make(map[int64]struct{}),
		logger: logger.With().Str("component", "favorites").Logger(),
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", dbPath).
			Msg("favorites storage unavailable, keeping favorites in memory only")
		return s
	}
	s.db = db
	s.load()
	return s
}

func openDatabase(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// load reads the persisted array. Absent or corrupt values start the
// store empty; that is the documented recovery, not an error.
func (s *Store) load() {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", storageKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("favorites read failed, starting with an empty set")
		return
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn().Err(err).Msg("favorites value corrupt, starting with an empty set")
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Toggle flips membership for id and returns the new state. The write
// behind it is fire and forget: on failure the in-memory set keeps the
// toggle rather than rolling back.
func (s *Store) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present := s.ids[id]
	if present {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.persistLocked()
	return !present
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Contains is IsFavorite under the name the pipeline's membership
// interface expects.
func (s *Store) Contains(id int64) bool {
	return s.IsFavorite(id)
}

// List returns the favorited ids in ascending order.
func (s *Store) List() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Count returns the number of favorited ids.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) sortedLocked() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) persistLocked() {
	if s.db == nil {
		return
	}

	raw, err := json.Marshal(s.sortedLocked())
	if err != nil {
		s.logger.Error().Err(err).Msg("favorites encode failed, skipping write")
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, storageKey, string(raw))
	if err != nil {
		metrics.FavoritesWriteFailures.Inc()
		s.logger.Error().Err(err).Msg("favorites write failed, in-memory state kept")
	}
}

// Close releases the underlying database. Memory-only stores have
// nothing to release.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
