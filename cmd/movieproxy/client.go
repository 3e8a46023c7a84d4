package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the movieproxy server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new movieproxy API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server error %d (%s): %s", resp.StatusCode, errResp.Code, errResp.Error)
		}
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// API response types (mirror server types)

type MovieDetailsResponse struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date"`
	Rating      float64 `json:"rating"`
	Summary     string  `json:"summary"`
	DurationMs  float64 `json:"duration_ms"`
}

type SearchResultItem struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date"`
}

type SearchResponse struct {
	Query        string             `json:"query"`
	TotalResults int                `json:"total_results"`
	Results      []SearchResultItem `json:"results"`
	DurationMs   float64            `json:"duration_ms"`
}

type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	Capacity  int   `json:"capacity"`
}

type StatusResponse struct {
	Status      string      `json:"status"`
	Version     string      `json:"version"`
	MovieData   bool        `json:"movie_data"`
	DetailCache *CacheStats `json:"detail_cache,omitempty"`
	SearchCache *CacheStats `json:"search_cache,omitempty"`
}

// API methods

func (c *Client) Movie(id int64) (*MovieDetailsResponse, error) {
	var resp MovieDetailsResponse
	if err := c.get(fmt.Sprintf("/movies/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get("/search?query="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
