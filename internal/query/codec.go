package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Query string parameter names. The codec is the single owner of this
// vocabulary; nothing else reads or writes these keys.
const (
	paramSearch     = "q"
	paramGenre      = "genre"
	paramSort       = "sort"
	paramView       = "view"
	paramPagination = "pagination"
	paramPage       = "page"
)

// The paged mode is spelled "pages" on the wire.
const paginationPagedParam = "pages"

// The wire spellings for sort differ from the SortKey names: the
// default is spelled in full and the rest by their dimension alone.
var sortToParam = map[SortKey]string{
	SortRatingDesc: "rating-desc",
	SortRatingAsc:  "rating",
	SortYearDesc:   "year",
	SortTitleAsc:   "title",
}

var paramToSort = map[string]SortKey{
	"rating-desc": SortRatingDesc,
	"rating":      SortRatingAsc,
	"year":        SortYearDesc,
	"title":       SortTitleAsc,
}

// Encode serializes m as a URL query string, emitting a key only when
// its value differs from the default. A fully default model encodes to
// the empty string. Keys come out in url.Values order, so equal models
// always encode identically.
func Encode(m Model) string {
	v := url.Values{}
	if m.SearchTerm != "" {
		v.Set(paramSearch, m.SearchTerm)
	}
	if m.Genre != "" && m.Genre != GenreAll {
		v.Set(paramGenre, strings.ToLower(m.Genre))
	}
	if m.Sort != SortRatingDesc {
		if p, ok := sortToParam[m.Sort]; ok {
			v.Set(paramSort, p)
		}
	}
	if m.View == ViewList {
		v.Set(paramView, string(ViewList))
	}
	if m.Pagination == PaginationPaged {
		v.Set(paramPagination, paginationPagedParam)
		if m.Page > 1 {
			v.Set(paramPage, strconv.Itoa(m.Page))
		}
	}
	return v.Encode()
}

// Patch is the portion of a Model recovered from a query string. Nil
// fields were absent or carried an unusable value; applying the patch
// leaves those fields at whatever the model already holds.
type Patch struct {
	SearchTerm *string
	Genre      *string
	Sort       *SortKey
	View       *ViewMode
	Pagination *PaginationMode
	Page       *int
}

// Decode parses a raw query string leniently: each key is validated on
// its own and an unusable value drops only that key, never the whole
// string. Unknown keys are ignored. Genre values are resolved against
// known to restore canonical casing.
func Decode(rawQuery string, known []string) Patch {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, _ := url.ParseQuery(rawQuery)

	var p Patch
	if values.Has(paramSearch) {
		s := values.Get(paramSearch)
		p.SearchTerm = &s
	}
	if values.Has(paramGenre) {
		g := NormalizeGenre(values.Get(paramGenre), known)
		if g != GenreAll {
			p.Genre = &g
		}
	}
	if raw := values.Get(paramSort); raw != "" {
		if key, ok := paramToSort[raw]; ok {
			p.Sort = &key
		}
	}
	if raw := values.Get(paramView); raw != "" {
		switch ViewMode(raw) {
		case ViewGrid, ViewList:
			mode := ViewMode(raw)
			p.View = &mode
		}
	}
	if raw := values.Get(paramPagination); raw != "" {
		switch raw {
		case paginationPagedParam:
			mode := PaginationPaged
			p.Pagination = &mode
		case string(PaginationInfinite):
			mode := PaginationInfinite
			p.Pagination = &mode
		}
	}
	if raw := values.Get(paramPage); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			p.Page = &n
		}
	}
	return p
}

// Apply lays the decoded fields over m. This is initialization, not
// interaction: fields are assigned directly so a page number in the URL
// survives instead of being wiped by the search-change window reset.
// Out-of-range pages get clamped by the first ObserveTotals.
func (p Patch) Apply(m *Model) {
	if p.SearchTerm != nil {
		m.SearchTerm = *p.SearchTerm
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Sort != nil {
		m.Sort = *p.Sort
	}
	if p.View != nil {
		m.View = *p.View
	}
	if p.Pagination != nil {
		m.Pagination = *p.Pagination
	}
	if p.Page != nil && m.Pagination == PaginationPaged {
		m.Page = *p.Page
	}
}

// FromURL is the decode convenience used at session start and by the
// stateless browse endpoint: defaults overlaid with whatever the query
// string validly carries.
func FromURL(rawQuery string, known []string) Model {
	m := Default()
	Decode(rawQuery, known).Apply(&m)
	return m
}
