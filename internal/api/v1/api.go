// Package v1 implements the movie metadata REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/movieproxy/internal/tmdb"
)

// Config holds API server configuration.
type Config struct {
	Version string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) *Server {
	return &Server{deps: deps, cfg: cfg}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Movie data
	mux.HandleFunc("GET /movies/{id}", s.requireMovies(s.getMovie))
	mux.HandleFunc("GET /search", s.requireMovies(s.searchMovies))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// roundMs converts a duration to milliseconds with 2-decimal rounding.
func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*100) / 100
}

// upstreamErrorCode maps client error kinds to machine-oriented codes.
func upstreamErrorCode(err error) string {
	var netErr *tmdb.NetworkError
	if errors.As(err, &netErr) {
		return "NETWORK_ERROR"
	}
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		return "UPSTREAM_ERROR"
	}
	return "INTERNAL_ERROR"
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if id < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "movie ID must be positive")
		return
	}

	start := time.Now()
	movie, err := s.deps.Movies.GetMovie(r.Context(), id)
	durationMs := roundMs(time.Since(start))

	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Movie with ID %d not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, upstreamErrorCode(err), "External API error: "+err.Error())
		return
	}

	resp, ok := mapMovie(movie, durationMs)
	if !ok {
		writeError(w, http.StatusInternalServerError, "MAPPING_ERROR", "Error processing external data structure")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// mapMovie shapes the upstream payload into the public schema. Returns
// false when required fields are missing, so the raw structure is never
// surfaced to the caller.
func mapMovie(m *tmdb.Movie, durationMs float64) (movieDetailsResponse, bool) {
	if m == nil || m.ID == 0 || m.Title == "" {
		return movieDetailsResponse{}, false
	}
	return movieDetailsResponse{
		MovieID:     m.ID,
		Title:       m.Title,
		ReleaseDate: optionalDate(m.ReleaseDate),
		Rating:      m.VoteAverage,
		Summary:     m.Overview,
		DurationMs:  durationMs,
	}, true
}

func optionalDate(date string) *string {
	if date == "" {
		return nil
	}
	return &date
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", "query parameter is required")
		return
	}

	start := time.Now()
	page, err := s.deps.Movies.SearchMovies(r.Context(), query)
	durationMs := roundMs(time.Since(start))

	if err != nil {
		writeError(w, http.StatusInternalServerError, upstreamErrorCode(err), "External API error: "+err.Error())
		return
	}

	resp := searchResponse{
		Query:      query,
		Results:    make([]searchResultItem, 0, len(page.Results)),
		DurationMs: durationMs,
	}

	for _, item := range page.Results {
		if item.ID == 0 || item.Title == "" {
			writeError(w, http.StatusInternalServerError, "MAPPING_ERROR", "Error processing external search results")
			return
		}
		resp.Results = append(resp.Results, searchResultItem{
			MovieID:     item.ID,
			Title:       item.Title,
			ReleaseDate: optionalDate(item.ReleaseDate),
		})
	}

	resp.TotalResults = page.TotalResults
	if resp.TotalResults == 0 {
		resp.TotalResults = len(resp.Results)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:    "ok",
		Version:   s.cfg.Version,
		MovieData: s.deps.Movies != nil,
	}
	if s.deps.Movies != nil {
		detail, search := s.deps.Movies.CacheStats()
		resp.DetailCache = &detail
		resp.SearchCache = &search
	}
	writeJSON(w, http.StatusOK, resp)
}
