package v1

import "github.com/vmunix/movieproxy/internal/cache"

// movieDetailsResponse is the public detail shape. Upstream field names
// never leak; duration_ms measures the cache-wrapped client call.
type movieDetailsResponse struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date"`
	Rating      float64 `json:"rating"`
	Summary     string  `json:"summary"`
	DurationMs  float64 `json:"duration_ms"`
}

type searchResultItem struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date"`
}

type searchResponse struct {
	Query        string             `json:"query"`
	TotalResults int                `json:"total_results"`
	Results      []searchResultItem `json:"results"`
	DurationMs   float64            `json:"duration_ms"`
}

type statusResponse struct {
	Status      string       `json:"status"`
	Version     string       `json:"version"`
	MovieData   bool         `json:"movie_data"`
	DetailCache *cache.Stats `json:"detail_cache,omitempty"`
	SearchCache *cache.Stats `json:"search_cache,omitempty"`
}
