package jikan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

const (
	DefaultBaseURL = "https://api.jikan.moe/v4"
	DefaultLimit   = 20

	defaultTimeout = 15 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
)

// genreIDs maps catalog genres to Jikan genre ids
var genreIDs = map[string]int{
	"Action":        1,
	"Adventure":     2,
	"Comedy":        4,
	"Drama":         8,
	"Fantasy":       10,
	"Horror":        14,
	"Romance":       22,
	"Sci-Fi":        24,
	"Slice of Life": 36,
	"Sports":        30,
	"Supernatural":  37,
	"Thriller":      41,
}

// GenreID returns the Jikan id for a genre name
func GenreID(genre string) (int, bool) {
	id, ok := genreIDs[genre]
	return id, ok
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL   string
	Limit     int
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables limiting
	Logger    *slog.Logger
}

// Client implements domain.ItemSource against the Jikan REST API
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewClient creates a new Jikan API client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		limit:   opts.Limit,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:    limiter,
		logger:     opts.Logger,
		retryDelay: baseRetryDelay,
	}
}

// FetchItems returns anime matching query, or the top titles of category.
// A non-empty query overrides the category.
func (c *Client) FetchItems(ctx context.Context, query, category string) ([]*domain.Item, error) {
	path, params := c.buildRequest(query, category)

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var resp AnimeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	data := bytes.TrimSpace(resp.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: missing data field", domain.ErrMalformedPayload)
	}

	var records []Anime
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	items := MapAnimeList(records)
	c.logger.Debug("jikan fetch complete", "path", path, "count", len(items))
	return items, nil
}

// buildRequest selects the endpoint for a (query, category) pair
func (c *Client) buildRequest(query, category string) (string, url.Values) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.limit))

	if query != "" {
		params.Set("q", query)
		return "/anime", params
	}

	if category != "" && category != domain.CategoryAll {
		id, ok := genreIDs[category]
		if !ok {
			c.logger.Warn("unknown genre, using unfiltered listing", "genre", category)
			return "/anime", params
		}
		params.Set("genres", strconv.Itoa(id))
		params.Set("order_by", "score")
		params.Set("sort", "desc")
		return "/anime", params
	}

	return "/top/anime", params
}

// doRequest performs a GET against the Jikan API.
// Retries with exponential backoff on 5xx and 429 responses.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("jikan request", "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("jikan request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
			c.logger.Warn("jikan server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
			)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Error("jikan request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("jikan request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}
