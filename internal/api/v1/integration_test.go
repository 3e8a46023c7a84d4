package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/movieproxy/internal/tmdb"
)

// These tests run the full stack: mux -> handlers -> cached client -> stub
// upstream, with no mocks.

func setupStack(t *testing.T, upstream http.Handler) (*http.ServeMux, *int) {
	t.Helper()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		upstream.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(ServerDeps{Movies: client}, Config{Version: "test"}).RegisterRoutes(mux)
	return mux, &calls
}

func TestIntegration_GetMovie_CacheHit(t *testing.T) {
	mux, calls := setupStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/24428", r.URL.Path)
		time.Sleep(30 * time.Millisecond) // make the miss measurably slower
		_, _ = w.Write([]byte(`{"id":24428,"title":"The Avengers","release_date":"2012-04-25","vote_average":7.7,"overview":"..."}`))
	}))

	do := func() movieDetailsResponse {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies/24428", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp movieDetailsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	first := do()
	assert.Equal(t, int64(24428), first.MovieID)
	assert.Equal(t, "The Avengers", first.Title)
	assert.Equal(t, 1, *calls)

	second := do()
	assert.Equal(t, first.MovieID, second.MovieID)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, *calls, "second request must not reach upstream")
	assert.Less(t, second.DurationMs, first.DurationMs, "cache hit should be faster than the miss")
}

func TestIntegration_GetMovie_ErrorReplayedFromCache(t *testing.T) {
	mux, calls := setupStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_message":"The backend server is unavailable."}`))
	}))

	for range 2 {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies/550", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "UPSTREAM_ERROR", getErrorCode(t, w))
	}

	// The first failure was cached; the repeat did not retry upstream
	assert.Equal(t, 1, *calls)
}

func TestIntegration_Search(t *testing.T) {
	mux, calls := setupStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":1,"total_results":1,"total_pages":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-31"}]}`))
	}))

	for range 2 {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?query=matrix", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.TotalResults)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "The Matrix", resp.Results[0].Title)
	}
	assert.Equal(t, 1, *calls, "identical search should be served from cache")
}
