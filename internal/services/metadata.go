package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/itzgeebee/top-movies/internal/shared"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRateLimit  = 4.0 // requests per second
	searchCachePrefix = "movies:search:"
	detailCachePrefix = "movies:detail:"
	searchCacheTTL    = 4 * time.Hour
	detailCacheTTL    = 24 * time.Hour
)

// MovieSummary is one unvalidated candidate returned by the search call,
// used only for user selection before a detail fetch.
type MovieSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

// MovieDetail is the by-id detail record.
type MovieDetail struct {
	OriginalTitle string `json:"original_title"`
	PosterPath    string `json:"poster_path"`
	ReleaseDate   string `json:"release_date"`
	Overview      string `json:"overview"`
}

// Year returns the release year: the text before the first "-" of the
// release date ("1999-03-31" -> "1999").
func (d *MovieDetail) Year() string {
	return strings.SplitN(d.ReleaseDate, "-", 2)[0]
}

type searchResponse struct {
	Results []MovieSummary `json:"results"`
}

// MetadataService is the interface the handlers consume, implemented by
// [Client] and mocked in tests.
type MetadataService interface {
	Search(ctx context.Context, query string) ([]MovieSummary, error)
	FetchDetail(ctx context.Context, externalID int64) (*MovieDetail, error)
	ImageURL(posterPath string) string
}

// ClientConfig contains the explicit configuration for a metadata [Client].
// The API key is injected here at startup rather than read from ambient
// process state.
type ClientConfig struct {
	BaseURL      string
	APIKey       string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration
	RateLimit    float64 // requests per second
	Logger       *log.Logger
	Redis        *redis.Client // nil disables response caching
	HTTPClient   *http.Client
}

// Client implements [MetadataService] against the configured base URL.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *log.Logger
	redis        *redis.Client
}

// NewClient creates a metadata client. The API key is required.
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: metadata API key", shared.ErrMissingCredentials)
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("%w: metadata base URL", shared.ErrMissingConfig)
	}
	if config.Language == "" {
		config.Language = "en-US"
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
	}
	if config.Logger == nil {
		config.Logger = shared.NewLogger(nil)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		baseURL:      strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:       config.APIKey,
		imageBaseURL: strings.TrimSuffix(config.ImageBaseURL, "/"),
		language:     config.Language,
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		logger:       config.Logger,
		redis:        config.Redis,
	}, nil
}

// Search issues the title-search request and returns the raw candidate list
// as the API provided it: unfiltered, unsorted, however many results the API
// chose to return.
func (c *Client) Search(ctx context.Context, query string) ([]MovieSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", shared.ErrInvalidInput)
	}

	cacheKey := searchCachePrefix + query
	var result searchResponse
	if c.cacheGet(ctx, cacheKey, &result) {
		return result.Results, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)

	searchURL := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())
	if err := c.get(ctx, searchURL, &result); err != nil {
		return nil, err
	}

	c.cacheSet(ctx, cacheKey, result, searchCacheTTL)
	return result.Results, nil
}

// FetchDetail issues the by-id detail request.
func (c *Client) FetchDetail(ctx context.Context, externalID int64) (*MovieDetail, error) {
	cacheKey := fmt.Sprintf("%s%d", detailCachePrefix, externalID)
	var detail MovieDetail
	if c.cacheGet(ctx, cacheKey, &detail) {
		return &detail, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	detailURL := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, externalID, params.Encode())
	if err := c.get(ctx, detailURL, &detail); err != nil {
		return nil, err
	}

	c.cacheSet(ctx, cacheKey, detail, detailCacheTTL)
	return &detail, nil
}

// ImageURL builds a fully-qualified poster URL from the configured CDN
// prefix and the poster path fragment the API returned.
func (c *Client) ImageURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimPrefix(posterPath, "/")
}

// get performs a single rate-limited GET and decodes the JSON body into out.
// There is no retry: any failure wraps [shared.ErrUpstream] for the caller.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrUpstream, err)
	}

	c.logger.Debug("metadata API request", "status", resp.StatusCode, "duration", time.Since(start))
	return nil
}

// cacheGet loads a cached payload into out. A cache miss or any cache error
// reports false and lets the request proceed to the API.
func (c *Client) cacheGet(ctx context.Context, key string, out any) bool {
	if c.redis == nil {
		return false
	}

	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read from cache", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), out); err != nil {
		c.logger.Warn("failed to unmarshal cached payload", "key", key, "error", err)
		return false
	}

	return true
}

// cacheSet stores a payload; cache write failures are logged, never surfaced.
func (c *Client) cacheSet(ctx context.Context, key string, payload any, ttl time.Duration) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("failed to marshal payload for caching", "key", key, "error", err)
		return
	}

	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("failed to write to cache", "key", key, "error", err)
	}
}
