package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	v1 "github.com/vmunix/movieproxy/internal/api/v1"
	"github.com/vmunix/movieproxy/internal/config"
	"github.com/vmunix/movieproxy/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config; a missing file falls back to built-in defaults so the
	// daemon can run with just TMDB_API_KEY in the environment
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: %w", err)
		}
		cfg = config.Default()
	}
	if cfg.TMDB.APIKey == "" {
		cfg.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// === TMDB client (optional - nil if no API key) ===
	var movieClient *tmdb.Client
	if cfg.TMDB.APIKey != "" {
		movieClient, err = tmdb.NewClient(cfg.TMDB.APIKey,
			tmdb.WithBaseURL(cfg.TMDB.BaseURL),
			tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
			tmdb.WithLogger(logger),
			tmdb.WithCacheSizes(cfg.TMDB.DetailCacheSize, cfg.TMDB.SearchCacheSize),
		)
		if err != nil {
			return fmt.Errorf("tmdb client: %w", err)
		}
	} else {
		logger.Warn("TMDB API key not configured, movie-data routes will return 503")
	}

	// === HTTP Setup ===
	mux := http.NewServeMux()

	deps := v1.ServerDeps{}
	if movieClient != nil {
		deps.Movies = movieClient
	}
	v1.New(deps, v1.Config{Version: version}).RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"tmdb", movieClient != nil,
		"detail_cache", cfg.TMDB.DetailCacheSize,
		"search_cache", cfg.TMDB.SearchCacheSize,
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Serve until SIGINT/SIGTERM, then drain with a 30s grace period
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
