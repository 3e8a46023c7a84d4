package v1

import (
	"context"

	"github.com/vmunix/movieproxy/internal/cache"
	"github.com/vmunix/movieproxy/internal/tmdb"
)

//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks

// MovieService defines the cached TMDB operations the API serves.
type MovieService interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	SearchMovies(ctx context.Context, query string) (*tmdb.SearchPage, error)
	CacheStats() (detail, search cache.Stats)
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	// Movies is nil when no TMDB API key is configured. Movie-data
	// routes answer 503 in that case; the status route still works.
	Movies MovieService
}
