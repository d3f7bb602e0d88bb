// Package session holds per-client browsing state. Each session owns a
// query model whose transitions arrive through Apply; search terms are
// debounced so a burst of keystrokes commits once, after quiescence,
// with the last term winning.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/debounce"
	"github.com/msarayu20/movie-catalog/internal/engine"
	"github.com/msarayu20/movie-catalog/internal/metrics"
	"github.com/msarayu20/movie-catalog/internal/query"
)

// Session is one client's live query state. Safe for concurrent use;
// every model mutation goes through the session's lock.
type Session struct {
	ID string

	mu            sync.Mutex
	model         query.Model
	pendingSearch *string
	debouncer     *debounce.Debouncer
	genres        []string
	lastSeen      time.Time
	logger        zerolog.Logger
}

// Update carries the fields of a single state-change request. Nil
// fields are left untouched.
type Update struct {
	Search     *string
	Genre      *string
	Sort       *string
	View       *string
	Pagination *string
	Page       *int
}

// Snapshot is a point-in-time copy of a session's query state.
// PendingSearch is the staged term still inside its debounce window,
// nil once committed.
type Snapshot struct {
	Model         query.Model
	PendingSearch *string
}

// Apply runs the update's transitions against the model. Filters apply
// before the window controls so an explicit page in the same update
// lands after the resets it triggers. The search term is not applied
// here: it is staged and committed only after the debounce window
// closes without another keystroke.
func (s *Session) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Genre != nil {
		s.model.SetGenre(*u.Genre, s.genres)
	}
	if u.Sort != nil {
		s.model.SetSort(*u.Sort)
	}
	if u.View != nil {
		s.model.SetView(*u.View)
	}
	if u.Pagination != nil {
		s.model.SetPaginationMode(*u.Pagination)
	}
	if u.Page != nil {
		s.model.SetPage(*u.Page)
	}
	if u.Search != nil {
		s.stageSearchLocked(*u.Search)
	}
}

func (s *Session) stageSearchLocked(term string) {
	staged := term
	s.pendingSearch = &staged
	s.debouncer.Schedule(func() { s.commitSearch(staged) })
}

// commitSearch applies a staged term after its quiet period. A term
// that is no longer the staged one lost the race to a newer keystroke
// and is discarded.
func (s *Session) commitSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingSearch == nil || *s.pendingSearch != term {
		return
	}
	s.pendingSearch = nil
	s.model.SetSearchTerm(term)
}

// LoadMore grows the infinite-scroll window. Reports false without
// changing anything when the session is in paged mode.
func (s *Session) LoadMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.LoadMore()
}

// View computes the visible window for the session's current model and
// feeds the totals back so the page stays in range. When the feedback
// moves the page, the window is recomputed against the corrected model,
// so callers always see a slice consistent with the returned snapshot.
func (s *Session) View(records []catalog.Movie, opts engine.Options) (engine.Result, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	res := engine.ComputeVisible(records, s.model, opts)
	metrics.ObserveCompute(time.Since(start))

	pageBefore := s.model.Page
	s.model.ObserveTotals(res.TotalMatches, res.TotalPages)
	if s.model.Page != pageBefore {
		res = engine.ComputeVisible(records, s.model, opts)
	}
	return res, s.snapshotLocked()
}

// State returns the current query state without computing a window.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Model: s.model}
	if s.pendingSearch != nil {
		staged := *s.pendingSearch
		snap.PendingSearch = &staged
	}
	return snap
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// close drops any staged search so a late timer fire cannot mutate a
// session that has already been discarded.
func (s *Session) close() {
	s.mu.Lock()
	s.pendingSearch = nil
	s.mu.Unlock()
	s.debouncer.Cancel()
}
