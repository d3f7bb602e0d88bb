package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/engine"
	"github.com/msarayu20/movie-catalog/internal/favorites"
	"github.com/msarayu20/movie-catalog/internal/metrics"
	"github.com/msarayu20/movie-catalog/internal/query"
	"github.com/msarayu20/movie-catalog/internal/search"
	"github.com/msarayu20/movie-catalog/internal/session"
)

const Version = "0.1.0"

type Handler struct {
	catalog   *catalog.Store
	favorites *favorites.Store
	sessions  *session.Manager
	logger    zerolog.Logger

	// browseCache memoizes stateless browse responses by canonical
	// query string: the catalog is immutable and the pipeline is pure,
	// so equal queries always yield equal windows. Favorite flags are
	// stamped on after lookup and never cached. Nil when disabled.
	browseCache *lru.Cache[string, BrowseResponse]
}

func NewHandler(store *catalog.Store, favs *favorites.Store, sessions *session.Manager, logger zerolog.Logger, cacheEntries int) *Handler {
	h := &Handler{
		catalog:   store,
		favorites: favs,
		sessions:  sessions,
		logger:    logger,
	}
	if cacheEntries > 0 {
		if cache, err := lru.New[string, BrowseResponse](cacheEntries); err == nil {
			h.browseCache = cache
		}
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Movies:  h.catalog.Len(),
	})
}

// Browse runs the pipeline for an ad-hoc query string. One-shot and
// stateless; clients that want debounced search and a persistent window
// use sessions instead.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	model := query.FromURL(r.URL.RawQuery, h.catalog.Genres())
	resp := h.browse(&model, engine.Options{}, true)
	writeJSON(w, http.StatusOK, resp)
}

// BrowseFavorites is Browse restricted to the favorite set. Never
// cached: the favorite set changes underneath the query string.
func (h *Handler) BrowseFavorites(w http.ResponseWriter, r *http.Request) {
	model := query.FromURL(r.URL.RawQuery, h.catalog.Genres())
	resp := h.browse(&model, engine.Options{FavoritesOnly: true, Favorites: h.favorites}, false)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie not found")
		return
	}

	m, ok := h.catalog.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie not found")
		return
	}

	writeJSON(w, http.StatusOK, MovieResponse{Movie: h.detail(m)})
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GenresResponse{Genres: h.catalog.Genres()})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.List()
	writeJSON(w, http.StatusOK, FavoritesResponse{IDs: ids, Count: len(ids)})
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie not found")
		return
	}

	if _, ok := h.catalog.ByID(id); !ok {
		writeError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie not found")
		return
	}

	state := h.favorites.Toggle(id)
	h.logger.Debug().Int64("id", id).Bool("favorite", state).Msg("favorite toggled")

	writeJSON(w, http.StatusOK, ToggleResponse{ID: id, Favorite: state})
}

// Session handlers

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	s := h.sessions.Create(req.Query)
	writeJSON(w, http.StatusCreated, h.sessionResponse(s))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse(s))
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}

	var req SessionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	s.Apply(session.Update{
		Search:     req.Search,
		Genre:      req.Genre,
		Sort:       req.Sort,
		View:       req.View,
		Pagination: req.Pagination,
		Page:       req.Page,
	})
	writeJSON(w, http.StatusOK, h.sessionResponse(s))
}

// SessionLoadMore grows the infinite-scroll window. In paged mode the
// request is ignored, not rejected; the response simply shows the
// unchanged window.
func (h *Handler) SessionLoadMore(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}

	if !s.LoadMore() {
		h.logger.Debug().Str("session_id", s.ID).Msg("load-more ignored outside infinite mode")
	}
	writeJSON(w, http.StatusOK, h.sessionResponse(s))
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// browse computes a BrowseResponse for the model, serving cacheable
// queries from the LRU. The model is passed by pointer because the
// totals feedback may clamp its page before the response is built.
func (h *Handler) browse(model *query.Model, opts engine.Options, cacheable bool) BrowseResponse {
	cacheable = cacheable && h.browseCache != nil && !opts.FavoritesOnly
	if cacheable {
		if cached, ok := h.browseCache.Get(query.Encode(*model)); ok {
			metrics.BrowseCacheHits.Inc()
			return h.refreshFavorites(cached)
		}
		metrics.BrowseCacheMisses.Inc()
	}

	res := h.compute(model, opts)
	resp := h.buildBrowseResponse(*model, res)

	if cacheable {
		h.browseCache.Add(resp.CanonicalQuery, resp)
	}
	return h.refreshFavorites(resp)
}

// compute runs the pipeline and feeds the totals back into the model,
// recomputing once when the feedback pulled an out-of-range page back.
func (h *Handler) compute(model *query.Model, opts engine.Options) engine.Result {
	records := h.catalog.All()

	start := time.Now()
	res := engine.ComputeVisible(records, *model, opts)
	metrics.ObserveCompute(time.Since(start))

	pageBefore := model.Page
	model.ObserveTotals(res.TotalMatches, res.TotalPages)
	if model.Page != pageBefore {
		res = engine.ComputeVisible(records, *model, opts)
	}
	return res
}

func (h *Handler) buildBrowseResponse(model query.Model, res engine.Result) BrowseResponse {
	movies := make([]MovieSummary, 0, len(res.Visible))
	for _, m := range res.Visible {
		movies = append(movies, summarize(m))
	}

	resp := BrowseResponse{
		Movies:         movies,
		Pagination:     paginationMeta(model, res),
		Query:          queryState(model),
		CanonicalQuery: query.Encode(model),
	}
	if strings.TrimSpace(model.SearchTerm) != "" && res.TotalMatches == 0 {
		resp.Suggestions = search.Suggest(model.SearchTerm, h.catalog.Titles(), search.DefaultLimit)
	}
	return resp
}

// refreshFavorites stamps current favorite flags onto a response. The
// movie slice is copied first so cached entries stay flag-free.
func (h *Handler) refreshFavorites(resp BrowseResponse) BrowseResponse {
	movies := make([]MovieSummary, len(resp.Movies))
	copy(movies, resp.Movies)
	for i := range movies {
		movies[i].Favorite = h.favorites.IsFavorite(movies[i].ID)
	}
	resp.Movies = movies
	return resp
}

func (h *Handler) sessionResponse(s *session.Session) SessionResponse {
	res, snap := s.View(h.catalog.All(), engine.Options{})
	return SessionResponse{
		Session: SessionState{
			ID:            s.ID,
			Query:         queryState(snap.Model),
			PendingSearch: snap.PendingSearch,
		},
		View: h.refreshFavorites(h.buildBrowseResponse(snap.Model, res)),
	}
}

func (h *Handler) detail(m catalog.Movie) MovieDetail {
	d := MovieDetail{
		MovieSummary:    summarize(m),
		Description:     m.Description,
		Director:        m.Director,
		DurationMinutes: m.DurationMinutes,
		Cast:            m.Cast,
		Language:        m.Language,
		Country:         m.Country,
	}
	d.Favorite = h.favorites.IsFavorite(m.ID)
	return d
}

func summarize(m catalog.Movie) MovieSummary {
	return MovieSummary{
		ID:           m.ID,
		Title:        m.Title,
		Year:         m.Year,
		PrimaryGenre: m.PrimaryGenre(),
		Genres:       m.Genres,
		Rating:       m.Rating,
		PosterURL:    m.PosterURL,
	}
}

func queryState(model query.Model) QueryState {
	return QueryState{
		Search:     model.SearchTerm,
		Genre:      model.Genre,
		Sort:       string(model.Sort),
		View:       string(model.View),
		Pagination: string(model.Pagination),
		Page:       model.Page,
	}
}

func paginationMeta(model query.Model, res engine.Result) PaginationMeta {
	meta := PaginationMeta{
		Mode:         string(model.Pagination),
		Page:         model.Page,
		PageSize:     model.PageSize,
		TotalMatches: res.TotalMatches,
		TotalPages:   res.TotalPages,
		HasMore:      res.HasMore,
	}
	if model.Pagination == query.PaginationInfinite {
		meta.LoadedCount = model.LoadedCount
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
