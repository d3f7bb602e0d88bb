package query

import "strings"

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRatingDesc SortKey = "rating-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortYearDesc   SortKey = "year-desc"
	SortTitleAsc   SortKey = "title-asc"
)

// ViewMode is how the consumer lays out the visible records. It never
// changes which records are visible, only travels with the query state.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// PaginationMode selects between a monotonically growing window and
// fixed-size page navigation.
type PaginationMode string

const (
	PaginationInfinite PaginationMode = "infinite"
	PaginationPaged    PaginationMode = "paged"
)

// GenreAll is the sentinel meaning no genre filter.
const GenreAll = "all"

// PageSize is fixed for the system: both pagination modes window the
// match set in steps of this many records.
const PageSize = 12

// Model is the canonical representation of what the user currently
// wants to see. One instance lives per browsing session; every user
// interaction goes through a setter so the normalization and reset
// rules hold.
type Model struct {
	SearchTerm  string
	Genre       string
	Sort        SortKey
	View        ViewMode
	Pagination  PaginationMode
	Page        int
	PageSize    int
	LoadedCount int

	// Totals observed from the most recent pipeline run. SetPage clamps
	// against these and LoadMore caps against them; -1 means no run has
	// been observed yet.
	totalMatches int
	totalPages   int
}

// Default returns a Model with every field at its documented default.
func Default() Model {
	return Model{
		Genre:        GenreAll,
		Sort:         SortRatingDesc,
		View:         ViewGrid,
		Pagination:   PaginationInfinite,
		Page:         1,
		PageSize:     PageSize,
		LoadedCount:  PageSize,
		totalMatches: -1,
		totalPages:   1,
	}
}

// SetSearchTerm stores the raw term and restarts the window: changing
// the filter invalidates the current page position.
func (m *Model) SetSearchTerm(s string) {
	m.SearchTerm = s
	m.resetWindow()
}

// SetGenre validates g against the known genres plus "all". The match is
// case-insensitive and restores the catalog's canonical casing; anything
// unrecognized silently coerces to "all". Resets the window.
func (m *Model) SetGenre(g string, known []string) {
	m.Genre = NormalizeGenre(g, known)
	m.resetWindow()
}

// SetSort coerces unknown keys to the default. Re-sorting the same
// filtered set keeps the user's place, so the window is not reset.
func (m *Model) SetSort(key string) {
	m.Sort = ParseSortKey(key)
}

// SetView coerces unknown modes to grid. Layout only; nothing resets.
func (m *Model) SetView(mode string) {
	m.View = ParseViewMode(mode)
}

// SetPaginationMode switches windowing strategies. Entering infinite
// restarts the loaded window; entering paged returns to page one.
// Setting the already-active mode is a no-op.
func (m *Model) SetPaginationMode(mode string) {
	next := ParsePaginationMode(mode)
	if next == m.Pagination {
		return
	}
	m.Pagination = next
	switch next {
	case PaginationInfinite:
		m.LoadedCount = m.PageSize
	case PaginationPaged:
		m.Page = 1
	}
}

// SetPage clamps n into [1, totalPages] using the most recently
// observed totals.
func (m *Model) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if n > m.totalPages {
		n = m.totalPages
	}
	m.Page = n
}

// LoadMore grows the infinite-mode window by one page size, capped at
// the observed match count. Reports false, changing nothing, outside
// infinite mode.
func (m *Model) LoadMore() bool {
	if m.Pagination != PaginationInfinite {
		return false
	}
	m.LoadedCount += m.PageSize
	if m.totalMatches >= 0 && m.LoadedCount > m.totalMatches {
		m.LoadedCount = m.totalMatches
	}
	return true
}

// ObserveTotals feeds a pipeline result back into the model. The page is
// re-clamped here: the engine never self-corrects an out-of-range page,
// that is the caller's job after every recompute.
func (m *Model) ObserveTotals(matches, pages int) {
	if pages < 1 {
		pages = 1
	}
	m.totalMatches = matches
	m.totalPages = pages
	if m.Page > pages {
		m.Page = pages
	}
	if m.Page < 1 {
		m.Page = 1
	}
}

func (m *Model) resetWindow() {
	m.Page = 1
	m.LoadedCount = m.PageSize
}

// ParseSortKey maps a raw value onto a known sort key, coercing anything
// unrecognized to the default rating-desc.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRatingDesc, SortRatingAsc, SortYearDesc, SortTitleAsc:
		return SortKey(s)
	default:
		return SortRatingDesc
	}
}

// ParseViewMode coerces unrecognized modes to grid.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewGrid, ViewList:
		return ViewMode(s)
	default:
		return ViewGrid
	}
}

// ParsePaginationMode coerces unrecognized modes to infinite. The wire
// spelling "pages" is accepted as an alias for paged.
func ParsePaginationMode(s string) PaginationMode {
	switch s {
	case string(PaginationPaged), paginationPagedParam:
		return PaginationPaged
	case string(PaginationInfinite):
		return PaginationInfinite
	default:
		return PaginationInfinite
	}
}

// NormalizeGenre resolves g against the known genre names, ignoring
// case, and returns the catalog's canonical spelling. Empty, "all", or
// unknown values resolve to GenreAll.
func NormalizeGenre(g string, known []string) string {
	g = strings.TrimSpace(g)
	if g == "" || strings.EqualFold(g, GenreAll) {
		return GenreAll
	}
	for _, k := range known {
		if strings.EqualFold(g, k) {
			return k
		}
	}
	return GenreAll
}
