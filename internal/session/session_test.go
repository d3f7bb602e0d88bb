package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/debounce"
	"github.com/msarayu20/movie-catalog/internal/engine"
	"github.com/msarayu20/movie-catalog/internal/query"
)

var testGenres = []string{"Action", "Drama", "Sci-Fi", "Thriller"}

func testManager(t *testing.T, clock debounce.Clock) *Manager {
	t.Helper()
	return NewManager(Config{
		TTL:            10 * time.Minute,
		SearchDebounce: 300 * time.Millisecond,
		Clock:          clock,
	}, testGenres, zerolog.Nop())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func manyMovies(n int) []catalog.Movie {
	movies := make([]catalog.Movie, 0, n)
	for i := 1; i <= n; i++ {
		movies = append(movies, catalog.Movie{
			ID:     int64(i),
			Title:  fmt.Sprintf("Movie %02d", i),
			Year:   2000 + i%10,
			Genres: []string{"Drama"},
			Rating: float64(n-i) / 10,
		})
	}
	return movies
}

func TestCreateFromQueryString(t *testing.T) {
	m := testManager(t, debounce.NewManualClock())

	s := m.Create("q=dark&view=list&sort=year")

	snap := s.State()
	require.NotEmpty(t, s.ID)
	require.Equal(t, "dark", snap.Model.SearchTerm)
	require.Equal(t, query.ViewList, snap.Model.View)
	require.Equal(t, query.SortYearDesc, snap.Model.Sort)
	require.Nil(t, snap.PendingSearch)
}

func TestSearchCommitsAfterQuietPeriod(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("")

	for _, term := range []string{"d", "da", "dar", "dark"} {
		s.Apply(Update{Search: strPtr(term)})
		clock.Advance(100 * time.Millisecond)
	}

	snap := s.State()
	require.Equal(t, "", snap.Model.SearchTerm, "no quiet period has elapsed")
	require.NotNil(t, snap.PendingSearch)
	require.Equal(t, "dark", *snap.PendingSearch)

	clock.Advance(300 * time.Millisecond)

	snap = s.State()
	require.Equal(t, "dark", snap.Model.SearchTerm)
	require.Nil(t, snap.PendingSearch)
}

func TestSearchCommitResetsWindow(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("pagination=pages")
	s.View(manyMovies(30), engine.Options{})
	s.Apply(Update{Page: intPtr(3)})

	s.Apply(Update{Search: strPtr("movie")})
	clock.Advance(300 * time.Millisecond)

	require.Equal(t, 1, s.State().Model.Page, "committed search restarts the window")
}

func TestNonSearchUpdatesApplyImmediately(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("")

	s.Apply(Update{
		Genre:      strPtr("sci-fi"),
		Sort:       strPtr("title-asc"),
		View:       strPtr("list"),
		Pagination: strPtr("paged"),
	})

	snap := s.State()
	require.Equal(t, "Sci-Fi", snap.Model.Genre)
	require.Equal(t, query.SortTitleAsc, snap.Model.Sort)
	require.Equal(t, query.ViewList, snap.Model.View)
	require.Equal(t, query.PaginationPaged, snap.Model.Pagination)
}

func TestExplicitPageWinsOverFilterReset(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("pagination=pages")
	s.View(manyMovies(30), engine.Options{})

	s.Apply(Update{Genre: strPtr("drama"), Page: intPtr(2)})

	require.Equal(t, 2, s.State().Model.Page)
}

func TestViewFeedsTotalsBack(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("pagination=pages&page=5")
	seed := catalog.Seed()

	res, snap := s.View(seed, engine.Options{})

	// Eight matches only fill one page; the out-of-range page from the
	// URL is clamped and the window recomputed against page one.
	require.Equal(t, 1, snap.Model.Page)
	require.Len(t, res.Visible, 8)
	require.Equal(t, 1, res.TotalPages)
}

func TestLoadMoreGrowsInfiniteWindow(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("")
	records := manyMovies(30)

	res, _ := s.View(records, engine.Options{})
	require.Len(t, res.Visible, 12)
	require.True(t, res.HasMore)

	require.True(t, s.LoadMore())
	res, _ = s.View(records, engine.Options{})
	require.Len(t, res.Visible, 24)

	require.True(t, s.LoadMore())
	res, _ = s.View(records, engine.Options{})
	require.Len(t, res.Visible, 30)
	require.False(t, res.HasMore)
}

func TestLoadMoreRejectedInPagedMode(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("pagination=pages")

	require.False(t, s.LoadMore())
}

func TestManagerGetAndDelete(t *testing.T) {
	m := testManager(t, debounce.NewManualClock())
	s := m.Create("")

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = m.Get("unknown")
	require.False(t, ok)

	require.True(t, m.Delete(s.ID))
	require.False(t, m.Delete(s.ID))
	require.Equal(t, 0, m.Count())
}

func TestDeleteCancelsStagedSearch(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("")

	s.Apply(Update{Search: strPtr("dark")})
	m.Delete(s.ID)
	clock.Advance(time.Second)

	require.Equal(t, "", s.State().Model.SearchTerm, "a deleted session must not commit staged input")
}

func TestEvictIdleHonorsTTL(t *testing.T) {
	m := testManager(t, debounce.NewManualClock())
	base := time.Unix(1000, 0)
	m.now = func() time.Time { return base }

	stale := m.Create("")
	fresh := m.Create("")

	// Only fresh gets touched near the eviction horizon.
	m.now = func() time.Time { return base.Add(9 * time.Minute) }
	_, ok := m.Get(fresh.ID)
	require.True(t, ok)

	evicted := m.evictIdle(base.Add(11 * time.Minute))

	require.Equal(t, 1, evicted)
	_, ok = m.Get(stale.ID)
	require.False(t, ok)
	_, ok = m.Get(fresh.ID)
	require.True(t, ok)
}

func TestNewerKeystrokeDiscardsOlderCommit(t *testing.T) {
	clock := debounce.NewManualClock()
	m := testManager(t, clock)
	s := m.Create("")

	s.Apply(Update{Search: strPtr("inter")})
	clock.Advance(200 * time.Millisecond)
	s.Apply(Update{Search: strPtr("interstellar")})
	clock.Advance(300 * time.Millisecond)

	require.Equal(t, "interstellar", s.State().Model.SearchTerm)
}
