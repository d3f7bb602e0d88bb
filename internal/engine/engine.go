package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/query"
)

// Membership answers favorite-set lookups without tying the pipeline to
// the favorites store's persistence.
type Membership interface {
	Contains(id int64) bool
}

// Options selects the optional favorites-only view. The zero value is
// the normal full-catalog pipeline.
type Options struct {
	FavoritesOnly bool
	Favorites     Membership
}

// Result is the visible window plus the pagination metadata consumers
// need to render controls.
type Result struct {
	Visible      []catalog.Movie
	TotalMatches int
	TotalPages   int
	HasMore      bool
}

// Search tokens of one or two runes are too noisy to match on their
// own; only the full-term substring test applies to them.
const minTokenRunes = 3

// ComputeVisible runs filter, sort and paginate over records for the
// given query. It is pure: records is never reordered or mutated, the
// same inputs always produce the same result, and malformed input
// degrades to an empty window rather than an error.
//
// An out-of-range page yields an empty Visible slice on purpose. The
// pipeline never second-guesses its input; callers clamp the page via
// Model.ObserveTotals and recompute.
func ComputeVisible(records []catalog.Movie, q query.Model, opts Options) Result {
	matched := filterRecords(records, q, opts)
	sortRecords(matched, q.Sort)

	total := len(matched)
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = query.PageSize
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	res := Result{
		TotalMatches: total,
		TotalPages:   totalPages,
	}
	switch q.Pagination {
	case query.PaginationPaged:
		start := (q.Page - 1) * pageSize
		end := start + pageSize
		if start < 0 || start >= total {
			res.Visible = []catalog.Movie{}
			res.HasMore = false
			return res
		}
		if end > total {
			end = total
		}
		res.Visible = matched[start:end]
		res.HasMore = end < total
	default:
		loaded := q.LoadedCount
		if loaded < 0 {
			loaded = 0
		}
		n := loaded
		if n > total {
			n = total
		}
		res.Visible = matched[:n]
		res.HasMore = total > loaded
	}
	return res
}

// filterRecords applies search then genre then the optional favorites
// restriction, preserving input order. It always allocates a fresh
// slice so the later sort cannot disturb the caller's records.
func filterRecords(records []catalog.Movie, q query.Model, opts Options) []catalog.Movie {
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	genre := q.Genre

	out := make([]catalog.Movie, 0, len(records))
	for _, m := range records {
		if term != "" && !titleMatches(strings.ToLower(m.Title), term) {
			continue
		}
		if genre != "" && genre != query.GenreAll && !m.HasGenre(genre) {
			continue
		}
		if opts.FavoritesOnly && (opts.Favorites == nil || !opts.Favorites.Contains(m.ID)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// titleMatches keeps a record when the whole normalized term is a
// substring of the title, or when any whitespace-delimited token of at
// least three runes is. A strict boolean OR with no relevance ranking;
// display order belongs to the sort step alone.
func titleMatches(lowerTitle, term string) bool {
	if strings.Contains(lowerTitle, term) {
		return true
	}
	for _, tok := range strings.Fields(term) {
		if utf8.RuneCountInString(tok) < minTokenRunes {
			continue
		}
		if strings.Contains(lowerTitle, tok) {
			return true
		}
	}
	return false
}

// sortRecords orders movies in place by the given key. Every ordering
// is stable so rating and year ties keep catalog load order. Unknown
// keys leave the filtered order untouched rather than failing.
func sortRecords(movies []catalog.Movie, key query.SortKey) {
	switch key {
	case query.SortRatingDesc:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Rating > movies[j].Rating
		})
	case query.SortRatingAsc:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Rating < movies[j].Rating
		})
	case query.SortYearDesc:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Year > movies[j].Year
		})
	case query.SortTitleAsc:
		// Collators carry internal buffers, so build one per call
		// instead of sharing; ComputeVisible stays safe to run from
		// any number of goroutines.
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(movies, func(i, j int) bool {
			return c.CompareString(movies[i].Title, movies[j].Title) < 0
		})
	}
}
