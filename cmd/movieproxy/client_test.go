package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Movie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/24428", r.URL.Path)
		_, _ = w.Write([]byte(`{"movie_id":24428,"title":"The Avengers","release_date":"2012-04-25","rating":7.7,"summary":"...","duration_ms":112.53}`))
	}))
	defer server.Close()

	movie, err := NewClient(server.URL).Movie(24428)
	require.NoError(t, err)
	assert.Equal(t, int64(24428), movie.MovieID)
	assert.Equal(t, "The Avengers", movie.Title)
	require.NotNil(t, movie.ReleaseDate)
	assert.Equal(t, "2012-04-25", *movie.ReleaseDate)
	assert.InDelta(t, 112.53, movie.DurationMs, 0.001)
}

func TestClient_Movie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Movie with ID 1 not found","code":"NOT_FOUND"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Movie(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "the matrix", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"query":"the matrix","total_results":1,"results":[{"movie_id":603,"title":"The Matrix","release_date":"1999-03-31"}],"duration_ms":95.21}`))
	}))
	defer server.Close()

	results, err := NewClient(server.URL).Search("the matrix")
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalResults)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "The Matrix", results.Results[0].Title)
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","version":"dev","movie_data":true,"detail_cache":{"hits":5,"misses":2,"evictions":0,"entries":2,"capacity":128}}`))
	}))
	defer server.Close()

	status, err := NewClient(server.URL).Status()
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.MovieData)
	require.NotNil(t, status.DetailCache)
	assert.Equal(t, int64(5), status.DetailCache.Hits)
	assert.Nil(t, status.SearchCache)
}

func TestClient_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL).Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
