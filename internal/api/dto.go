package api

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Movies  int    `json:"movies"`
}

// MovieSummary is the card-level projection of a catalog record.
type MovieSummary struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	PrimaryGenre string   `json:"primary_genre"`
	Genres       []string `json:"genres"`
	Rating       float64  `json:"rating"`
	PosterURL    string   `json:"poster_url"`
	Favorite     bool     `json:"favorite"`
}

// MovieDetail adds the pass-through fields a detail view shows.
type MovieDetail struct {
	MovieSummary
	Description     string   `json:"description"`
	Director        string   `json:"director,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Cast            []string `json:"cast,omitempty"`
	Language        string   `json:"language,omitempty"`
	Country         string   `json:"country,omitempty"`
}

// QueryState echoes the effective query after normalization, so
// clients always learn what their input was coerced to.
type QueryState struct {
	Search     string `json:"search"`
	Genre      string `json:"genre"`
	Sort       string `json:"sort"`
	View       string `json:"view"`
	Pagination string `json:"pagination"`
	Page       int    `json:"page"`
}

type PaginationMeta struct {
	Mode         string `json:"mode"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
	LoadedCount  int    `json:"loaded_count,omitempty"`
	TotalMatches int    `json:"total_matches"`
	TotalPages   int    `json:"total_pages"`
	HasMore      bool   `json:"has_more"`
}

// BrowseResponse is the full result of one pipeline run. CanonicalQuery
// is the minimal query string reproducing this view; Suggestions holds
// near-miss titles and is present only when a search matched nothing.
type BrowseResponse struct {
	Movies         []MovieSummary `json:"movies"`
	Pagination     PaginationMeta `json:"pagination"`
	Query          QueryState     `json:"query"`
	CanonicalQuery string         `json:"canonical_query"`
	Suggestions    []string       `json:"suggestions,omitempty"`
}

type MovieResponse struct {
	Movie MovieDetail `json:"movie"`
}

type GenresResponse struct {
	Genres []string `json:"genres"`
}

type FavoritesResponse struct {
	IDs   []int64 `json:"ids"`
	Count int     `json:"count"`
}

type ToggleResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
}

// Session DTOs

type CreateSessionRequest struct {
	// Query seeds the session from a previously shared query string,
	// for example the CanonicalQuery of an earlier response.
	Query string `json:"query"`
}

// SessionUpdateRequest carries partial query-state changes. Absent
// fields stay untouched; the search field is debounced server-side
// before it takes effect.
type SessionUpdateRequest struct {
	Search     *string `json:"search,omitempty"`
	Genre      *string `json:"genre,omitempty"`
	Sort       *string `json:"sort,omitempty"`
	View       *string `json:"view,omitempty"`
	Pagination *string `json:"pagination,omitempty"`
	Page       *int    `json:"page,omitempty"`
}

type SessionState struct {
	ID            string     `json:"id"`
	Query         QueryState `json:"query"`
	PendingSearch *string    `json:"pending_search,omitempty"`
}

type SessionResponse struct {
	Session SessionState   `json:"session"`
	View    BrowseResponse `json:"view"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
