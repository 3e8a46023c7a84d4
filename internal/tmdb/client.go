package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vmunix/movieproxy/internal/cache"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Default cache capacities per operation.
const (
	defaultDetailCacheSize = 128
	defaultSearchCacheSize = 32
)

// Client is a TMDB API client with per-operation memoization.
// Detail lookups and searches never share cache entries or capacity.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	detailCacheSize int
	searchCacheSize int

	details  *cache.Memo[int64, *Movie]
	searches *cache.Memo[string, *SearchPage]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// WithCacheSizes overrides the per-operation cache capacities.
func WithCacheSizes(detail, search int) Option {
	return func(c *Client) {
		c.detailCacheSize = detail
		c.searchCacheSize = search
	}
}

// NewClient creates a new TMDB client. The API key is required; an empty
// key fails construction with ErrMissingAPIKey so callers can degrade the
// affected routes instead of serving bad credentials.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		detailCacheSize: defaultDetailCacheSize,
		searchCacheSize: defaultSearchCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.details, err = cache.NewMemo(c.detailCacheSize, c.fetchMovie)
	if err != nil {
		return nil, fmt.Errorf("detail cache: %w", err)
	}
	c.searches, err = cache.NewMemo(c.searchCacheSize, c.fetchSearch)
	if err != nil {
		return nil, fmt.Errorf("search cache: %w", err)
	}

	return c, nil
}

// GetMovie fetches movie metadata by TMDB ID. Repeated calls with the same
// ID are served from the detail cache, whatever the first outcome was.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	return c.details.Get(ctx, tmdbID)
}

// SearchMovies searches movies by title. Repeated calls with the same query
// are served from the search cache.
func (c *Client) SearchMovies(ctx context.Context, query string) (*SearchPage, error) {
	return c.searches.Get(ctx, query)
}

// CacheStats returns counters for the detail and search caches.
func (c *Client) CacheStats() (detail, search cache.Stats) {
	return c.details.Stats(), c.searches.Stats()
}

// fetchMovie performs the actual detail request. Single attempt, no retries.
func (c *Client) fetchMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("%s/movie/%d", c.baseURL, tmdbID)
	resp, err := c.do(ctx, endpoint)
	if err != nil {
		if c.log != nil {
			c.log.Warn("movie fetch failed", "id", tmdbID, "error", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		if c.log != nil {
			c.log.Debug("movie not found", "id", tmdbID)
		}
		return nil, ErrNotFound
	}
	if err := checkStatus(resp); err != nil {
		if c.log != nil {
			c.log.Warn("movie fetch failed", "id", tmdbID, "error", err)
		}
		return nil, err
	}

	var movie Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("decode movie response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("fetched movie", "id", tmdbID, "title", movie.Title, "duration_ms", time.Since(start).Milliseconds())
	}

	return &movie, nil
}

// fetchSearch performs the actual search request. Single attempt, no retries.
func (c *Client) fetchSearch(ctx context.Context, query string) (*SearchPage, error) {
	start := time.Now()

	endpoint := c.baseURL + "/search/movie?query=" + url.QueryEscape(query)
	resp, err := c.do(ctx, endpoint)
	if err != nil {
		if c.log != nil {
			c.log.Warn("search failed", "query", query, "error", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if c.log != nil {
			c.log.Warn("search failed", "query", query, "error", err)
		}
		return nil, err
	}

	var page SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("search completed", "query", query, "results", len(page.Results), "duration_ms", time.Since(start).Milliseconds())
	}

	return &page, nil
}

// do issues an authenticated GET and normalizes transport failures.
func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// checkStatus turns any non-2xx response into an APIError carrying the
// upstream status_message when the body is parseable.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode, Message: statusMessage(resp.Body)}
}

// statusMessage extracts status_message from a TMDB error body.
func statusMessage(r io.Reader) string {
	var body struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.StatusMessage == "" {
		return "unknown API error"
	}
	return body.StatusMessage
}
