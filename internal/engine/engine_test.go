package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/query"
)

type fakeFavorites map[int64]struct{}

func (f fakeFavorites) Contains(id int64) bool {
	_, ok := f[id]
	return ok
}

func titlesOf(movies []catalog.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func idsOf(movies []catalog.Movie) []int64 {
	out := make([]int64, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

// wideOpen returns a default model whose window admits every record, so
// filter and sort behavior can be asserted without pagination in play.
func wideOpen(n int) query.Model {
	m := query.Default()
	m.LoadedCount = n
	return m
}

func syntheticCatalog(n int) []catalog.Movie {
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

func TestDefaultQueryOrdersByRatingDesc(t *testing.T) {
	seed := catalog.Seed()

	res := ComputeVisible(seed, wideOpen(len(seed)), Options{})

	require.Equal(t, []string{
		"The Dark Knight",
		"Inception",
		"The Matrix",
		"Interstellar",
		"Parasite",
		"Avengers: Endgame",
		"Joker",
		"La La Land",
	}, titlesOf(res.Visible), "ties must keep catalog load order")
	require.Equal(t, 8, res.TotalMatches)
	require.Equal(t, 1, res.TotalPages)
	require.False(t, res.HasMore)
}

func TestGenreFilterExactMembership(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.SetGenre("Sci-Fi", []string{"Sci-Fi"})
	m.LoadedCount = len(seed)

	res := ComputeVisible(seed, m, Options{})

	require.ElementsMatch(t, []string{
		"Inception", "Interstellar", "The Matrix", "Avengers: Endgame",
	}, titlesOf(res.Visible))
}

func TestGenreAllIsNoOp(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.Genre = query.GenreAll

	res := ComputeVisible(seed, m, Options{})

	require.Equal(t, len(seed), res.TotalMatches)
}

func TestSearchMatchesFullTermSubstring(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.SearchTerm = "  INCEPTION  "

	res := ComputeVisible(seed, m, Options{})

	require.Equal(t, []string{"Inception"}, titlesOf(res.Visible))
}

func TestSearchMatchesAnyLongToken(t *testing.T) {
	seed := catalog.Seed()

	t.Run("all tokens present", func(t *testing.T) {
		m := wideOpen(len(seed))
		m.SearchTerm = "dark knight"

		res := ComputeVisible(seed, m, Options{})

		require.Equal(t, []string{"The Dark Knight"}, titlesOf(res.Visible))
	})

	t.Run("one good token is enough", func(t *testing.T) {
		m := wideOpen(len(seed))
		m.SearchTerm = "dark knigt"

		res := ComputeVisible(seed, m, Options{})

		require.Equal(t, []string{"The Dark Knight"}, titlesOf(res.Visible))
	})

	t.Run("short tokens never match alone", func(t *testing.T) {
		m := wideOpen(len(seed))
		m.SearchTerm = "la xx"

		res := ComputeVisible(seed, m, Options{})

		// "la" has two runes, below the token threshold, and the full
		// term "la xx" is no title's substring.
		require.Empty(t, res.Visible)
		require.Equal(t, 0, res.TotalMatches)
	})
}

func TestSearchHasNoRanking(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.SearchTerm = "the"
	m.Sort = query.SortTitleAsc

	res := ComputeVisible(seed, m, Options{})

	// Matches are ordered by the active sort, never by match quality.
	require.Equal(t, []string{"The Dark Knight", "The Matrix"}, titlesOf(res.Visible))
}

func TestSortIdempotence(t *testing.T) {
	seed := catalog.Seed()
	for _, key := range []query.SortKey{
		query.SortRatingDesc, query.SortRatingAsc, query.SortYearDesc, query.SortTitleAsc,
	} {
		t.Run(string(key), func(t *testing.T) {
			m := wideOpen(len(seed))
			m.Sort = key

			once := ComputeVisible(seed, m, Options{})
			twice := ComputeVisible(once.Visible, m, Options{})

			require.Equal(t, idsOf(once.Visible), idsOf(twice.Visible))
		})
	}
}

func TestFilterCommutativity(t *testing.T) {
	seed := catalog.Seed()

	genreFirst := wideOpen(len(seed))
	genreFirst.SetGenre("Drama", []string{"Drama"})
	genreFirst.LoadedCount = len(seed)
	afterGenre := ComputeVisible(seed, genreFirst, Options{})

	searchOverGenre := wideOpen(len(afterGenre.Visible))
	searchOverGenre.SearchTerm = "la"
	bothA := ComputeVisible(afterGenre.Visible, searchOverGenre, Options{})

	searchFirst := wideOpen(len(seed))
	searchFirst.SearchTerm = "la"
	afterSearch := ComputeVisible(seed, searchFirst, Options{})

	genreOverSearch := wideOpen(len(afterSearch.Visible))
	genreOverSearch.SetGenre("Drama", []string{"Drama"})
	genreOverSearch.LoadedCount = len(afterSearch.Visible)
	bothB := ComputeVisible(afterSearch.Visible, genreOverSearch, Options{})

	require.ElementsMatch(t, idsOf(bothA.Visible), idsOf(bothB.Visible))
}

func TestYearSortDescending(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.Sort = query.SortYearDesc

	res := ComputeVisible(seed, m, Options{})

	years := make([]int, 0, len(res.Visible))
	for _, mv := range res.Visible {
		years = append(years, mv.Year)
	}
	require.IsNonIncreasing(t, years)

	// 2019 tie keeps load order: Parasite(5), Endgame(6), Joker(8).
	require.Equal(t, []int64{5, 6, 8}, idsOf(res.Visible)[:3])
}

func TestTitleSortIgnoresCase(t *testing.T) {
	records := []catalog.Movie{
		{ID: 1, Title: "brave", Year: 2012, Genres: []string{"Animation"}, Rating: 7.1},
		{ID: 2, Title: "Avatar", Year: 2009, Genres: []string{"Sci-Fi"}, Rating: 7.9},
	}
	m := wideOpen(len(records))
	m.Sort = query.SortTitleAsc

	res := ComputeVisible(records, m, Options{})

	require.Equal(t, []string{"Avatar", "brave"}, titlesOf(res.Visible))
}

func TestUnknownSortKeyPassesThrough(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.Sort = query.SortKey("popularity")

	res := ComputeVisible(seed, m, Options{})

	require.Equal(t, idsOf(seed), idsOf(res.Visible), "unsorted pass-through keeps load order")
}

func TestPaginationCoverage(t *testing.T) {
	records := syntheticCatalog(30)
	m := query.Default()
	m.SetPaginationMode("paged")

	seen := make(map[int64]int)
	var all []int64
	for page := 1; page <= 3; page++ {
		m.Page = page
		res := ComputeVisible(records, m, Options{})
		require.Equal(t, 30, res.TotalMatches)
		require.Equal(t, 3, res.TotalPages)
		require.Equal(t, page < 3, res.HasMore)
		for _, id := range idsOf(res.Visible) {
			seen[id]++
			all = append(all, id)
		}
	}

	require.Len(t, all, 30, "pages must cover every match exactly once")
	for id, n := range seen {
		require.Equal(t, 1, n, "record %d appeared %d times", id, n)
	}
}

func TestPagedWindowBounds(t *testing.T) {
	records := syntheticCatalog(30)
	m := query.Default()
	m.SetPaginationMode("paged")
	m.Page = 3

	res := ComputeVisible(records, m, Options{})

	require.Len(t, res.Visible, 6, "last page holds the remainder")
	require.False(t, res.HasMore)
}

func TestPagedOutOfRangeYieldsEmpty(t *testing.T) {
	seed := catalog.Seed()
	m := query.Default()
	m.SetPaginationMode("paged")
	m.Page = 5

	res := ComputeVisible(seed, m, Options{})

	require.Empty(t, res.Visible)
	require.Equal(t, 8, res.TotalMatches)
	require.Equal(t, 1, res.TotalPages)

	// The model, not the pipeline, pulls the page back in range.
	m.ObserveTotals(res.TotalMatches, res.TotalPages)
	require.Equal(t, 1, m.Page)
	res = ComputeVisible(seed, m, Options{})
	require.Len(t, res.Visible, 8)
}

func TestInfiniteWindowGrowth(t *testing.T) {
	records := syntheticCatalog(30)
	m := query.Default()

	res := ComputeVisible(records, m, Options{})
	require.Len(t, res.Visible, 12)
	require.True(t, res.HasMore)

	m.ObserveTotals(res.TotalMatches, res.TotalPages)
	m.LoadMore()
	res = ComputeVisible(records, m, Options{})
	require.Len(t, res.Visible, 24)
	require.True(t, res.HasMore)

	m.LoadMore()
	res = ComputeVisible(records, m, Options{})
	require.Len(t, res.Visible, 30)
	require.False(t, res.HasMore)
}

func TestEmptyCatalog(t *testing.T) {
	res := ComputeVisible(nil, query.Default(), Options{})

	require.Empty(t, res.Visible)
	require.Equal(t, 0, res.TotalMatches)
	require.Equal(t, 1, res.TotalPages)
	require.False(t, res.HasMore)
}

func TestFavoritesOnlyView(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))

	res := ComputeVisible(seed, m, Options{FavoritesOnly: true, Favorites: fakeFavorites{2: {}, 7: {}}})
	require.ElementsMatch(t, []int64{2, 7}, idsOf(res.Visible))

	res = ComputeVisible(seed, m, Options{FavoritesOnly: true})
	require.Empty(t, res.Visible, "no membership source means nothing qualifies")
}

func TestFavoritesViewComposesWithFilters(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.SetGenre("Sci-Fi", []string{"Sci-Fi"})
	m.LoadedCount = len(seed)

	res := ComputeVisible(seed, m, Options{FavoritesOnly: true, Favorites: fakeFavorites{1: {}, 8: {}}})

	// Joker(8) is a favorite but not Sci-Fi; only Inception(1) passes both.
	require.Equal(t, []int64{1}, idsOf(res.Visible))
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	seed := catalog.Seed()
	before := idsOf(seed)

	m := wideOpen(len(seed))
	m.Sort = query.SortTitleAsc
	ComputeVisible(seed, m, Options{})

	require.Equal(t, before, idsOf(seed))
}

func TestComputeIsDeterministic(t *testing.T) {
	seed := catalog.Seed()
	m := wideOpen(len(seed))
	m.SearchTerm = "the"
	m.Sort = query.SortYearDesc

	first := ComputeVisible(seed, m, Options{})
	second := ComputeVisible(seed, m, Options{})

	require.Equal(t, idsOf(first.Visible), idsOf(second.Visible))
	require.Equal(t, first.TotalMatches, second.TotalMatches)
	require.Equal(t, first.TotalPages, second.TotalPages)
}
