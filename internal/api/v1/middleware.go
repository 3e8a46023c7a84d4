package v1

import "net/http"

// requireMovies wraps a handler and returns 503 if the TMDB client is not
// configured (missing API key at startup). Unrelated routes stay up.
func (s *Server) requireMovies(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Movies == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "TMDB client not configured")
			return
		}
		next(w, r)
	}
}
