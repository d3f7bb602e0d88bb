package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/msarayu20/movie-catalog/internal/api"
	"github.com/msarayu20/movie-catalog/internal/catalog"
	"github.com/msarayu20/movie-catalog/internal/config"
	"github.com/msarayu20/movie-catalog/internal/favorites"
	"github.com/msarayu20/movie-catalog/internal/server"
	"github.com/msarayu20/movie-catalog/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)

	logger.Info().
		Str("version", api.Version).
		Msg("starting movie catalog server")

	// Load the catalog; a missing source degrades to the seed set
	store := catalog.Load(cfg.Catalog.Path, logger)

	// Open the favorites store; never fatal, degrades to memory only
	favs := favorites.Open(cfg.Database.Path, logger)
	defer favs.Close()

	// Session manager for stateful browsing
	sessions := session.NewManager(session.Config{
		TTL:            cfg.Sessions.TTL,
		SearchDebounce: cfg.Sessions.SearchDebounce,
	}, store.Genres(), logger)

	// Create server
	srv := server.New(cfg, logger, store, favs, sessions)

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evict idle sessions in the background
	go sessions.Sweep(ctx, cfg.Sessions.SweepInterval)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info().Msg("received shutdown signal")
		cancel()

		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Error().Err(err).Msg("server error")
	}

	logger.Info().Msg("server stopped")
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
}
