package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/msarayu20/movie-catalog/internal/api"
	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/config"
	"github.com/msarayu20/movie-catalog/internal/favorites"
	"github.com/msarayu20/movie-catalog/internal/session"
)

type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	httpServer *http.Server
	router     *chi.Mux
	catalog    *catalog.Store
	favorites  *favorites.Store
	sessions   *session.Manager
	handler    *api.Handler
}

func New(cfg *config.Config, logger zerolog.Logger, store *catalog.Store, favs *favorites.Store, sessions *session.Manager) *Server {
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		catalog:   store,
		favorites: favs,
		sessions:  sessions,
	}

	s.router = chi.NewRouter()
	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(CORSMiddleware)
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.Use(MetricsMiddleware)

	if s.cfg.Server.RateLimit.Enabled {
		limiter := rate.NewLimiter(rate.Limit(s.cfg.Server.RateLimit.RPS), s.cfg.Server.RateLimit.Burst)
		s.router.Use(RateLimitMiddleware(limiter))
	}
}

func (s *Server) setupRoutes() {
	s.handler = api.NewHandler(s.catalog, s.favorites, s.sessions, s.logger, s.cfg.Cache.BrowseEntries)

	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handler.Health)

		r.Get("/movies", s.handler.Browse)
		r.Get("/movies/{id}", s.handler.GetMovie)
		r.Get("/genres", s.handler.ListGenres)

		r.Get("/favorites", s.handler.ListFavorites)
		r.Get("/favorites/movies", s.handler.BrowseFavorites)
		r.Post("/favorites/{id}/toggle", s.handler.ToggleFavorite)

		// Browsing sessions: stateful query models with debounced search
		r.Post("/sessions", s.handler.CreateSession)
		r.Get("/sessions/{id}", s.handler.GetSession)
		r.Patch("/sessions/{id}", s.handler.UpdateSession)
		r.Post("/sessions/{id}/load-more", s.handler.SessionLoadMore)
		r.Delete("/sessions/{id}", s.handler.DeleteSession)
	})
}

// Router exposes the composed handler chain, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
