// Package gitlab is a minimal GitLab REST v4 client covering the calls the
// review digest needs.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/umbrellio/gbot/internal/apperrors"
)

const (
	// DefaultPageSize is the per_page value sent on paginated calls
	DefaultPageSize = 100
	// DefaultMaxConcurrentRequests bounds in-flight API calls when unset
	DefaultMaxConcurrentRequests = 8

	totalPagesHeader = "X-Total-Pages"
	maxErrorBodyLen  = 512
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds connection settings for the client.
type Config struct {
	BaseURL string
	Token   string
	// MaxConcurrentRequests bounds in-flight calls; <= 0 uses the default
	MaxConcurrentRequests int
	// RateLimit is the sustained requests per second; <= 0 disables limiting
	RateLimit float64
}

// Client talks to the GitLab API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	semaphore  chan struct{}
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new GitLab client.
func NewClient(cfg Config, httpClient HTTPClient, logger *slog.Logger) *Client {
	maxConcurrent := cfg.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRequests
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		semaphore:  make(chan struct{}, maxConcurrent),
		limiter:    limiter,
		logger:     logger,
	}
}

// endpoint builds an API URL from path segments.
func (c *Client) endpoint(parts ...any) string {
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		segments = append(segments, url.PathEscape(fmt.Sprint(p)))
	}
	return c.baseURL + "/api/v4/" + strings.Join(segments, "/")
}

// acquire waits for a concurrency slot and the rate limiter.
func (c *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case c.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		<-c.semaphore
		return nil, err
	}

	return func() { <-c.semaphore }, nil
}

// doRequest performs a GET and decodes the JSON body into result.
// It returns the response headers for pagination.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values, result any) (http.Header, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &apperrors.UnexpectedError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET "+target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &apperrors.NetworkError{Message: err.Error(), URL: endpoint}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, &apperrors.NetworkError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
			URL:     endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, &apperrors.UnexpectedError{Err: fmt.Errorf("failed to decode %s: %w", endpoint, err)}
	}

	return resp.Header, nil
}

// totalPages reads the pagination header. A missing or malformed header
// means a single page.
func totalPages(h http.Header) int {
	n, err := strconv.Atoi(h.Get(totalPagesHeader))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// getPaginated fetches every page of a list endpoint and concatenates the
// items in page order.
func getPaginated[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("per_page", strconv.Itoa(DefaultPageSize))
	q.Set("page", "1")

	var first []T
	header, err := c.doRequest(ctx, endpoint, q, &first)
	if err != nil {
		return nil, err
	}

	all := first
	pages := totalPages(header)
	for page := 2; page <= pages; page++ {
		q.Set("page", strconv.Itoa(page))

		var next []T
		if _, err := c.doRequest(ctx, endpoint, q, &next); err != nil {
			return nil, err
		}
		all = append(all, next...)
	}

	return all, nil
}
