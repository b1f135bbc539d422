// Package sanity is an HTTP client for the Sanity GROQ query API.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/metrics"
)

// Compile-time check: Client implements content.Fetcher.
var _ content.Fetcher = (*Client)(nil)

// Defaults.
const (
	DefaultAPIVersion = "2025-10-01"
	DefaultDataset    = "production"
	DefaultTimeout    = 10 * time.Second

	// maxGETLength is the longest request URL sent as GET; longer queries are POSTed.
	maxGETLength = 8 * 1024
	// maxErrorBody bounds how much of a failed response is read for diagnostics.
	maxErrorBody = 64 * 1024
)

// ErrNotConfigured is returned when the client has no project ID.
var ErrNotConfigured = errors.New("sanity: project id is required")

// Config holds the content API settings.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration
	// RequestsPerSecond bounds outbound queries; zero disables the limiter.
	RequestsPerSecond float64
	Burst             int
	// BaseURL overrides the project host, e.g. for tests.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client runs GROQ queries over HTTP.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// APIError is a non-2xx response of the query API.
type APIError struct {
	StatusCode  int
	Type        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return "sanity API error " + strconv.Itoa(e.StatusCode)
	}
	return fmt.Sprintf("sanity API error %d: %s", e.StatusCode, e.Description)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// NewClient creates a query API client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.ProjectID == "" && cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	base := cfg.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN && cfg.Token == "" {
			host = "apicdn.sanity.io"
		}
		base = "https://" + cfg.ProjectID + "." + host
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit, burst := rate.Inf, cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		endpoint: base + "/v" + cfg.APIVersion + "/data/query/" + url.PathEscape(cfg.Dataset),
		token:    cfg.Token,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   cfg.Logger,
	}, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	MS     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

// Fetch runs a query and returns the raw result. A missing result decodes as "null".
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	op := content.OperationFromContext(ctx)

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.ContentRequestsTotal.WithLabelValues(op, "rate_limited").Inc()
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}
	metrics.ContentRateLimitWait.Observe(time.Since(waitStart).Seconds())

	req, err := c.newRequest(ctx, query, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.ContentRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("query %s: %w", op, err)
	}
	defer resp.Body.Close()

	metrics.ContentRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ContentRequestsTotal.WithLabelValues(op, "error").Inc()
		apiErr := parseAPIError(resp)
		c.logger.Warn("Content query failed",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.String("error_type", apiErr.Type),
			zap.Duration("duration", duration),
		)
		return nil, apiErr
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.ContentRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}
	metrics.ContentRequestsTotal.WithLabelValues(op, "success").Inc()

	c.logger.Debug("Content query completed",
		zap.String("operation", op),
		zap.Duration("duration", duration),
		zap.Int("server_ms", out.MS),
	)

	if len(out.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.Result, nil
}

// Ping runs a trivial query to verify API availability.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Fetch(content.WithOperation(ctx, "ping"), "now()", nil); err != nil {
		return fmt.Errorf("ping content API: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, query string, params map[string]any) (*http.Request, error) {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	var (
		req *http.Request
		err error
	)
	if getURL := c.endpoint + "?" + values.Encode(); len(getURL) <= maxGETLength {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, getURL, http.NoBody)
	} else {
		body, mErr := json.Marshal(map[string]any{"query": query, "params": params})
		if mErr != nil {
			return nil, fmt.Errorf("encode query body: %w", mErr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil {
		apiErr.Type = parsed.Error.Type
		apiErr.Description = parsed.Error.Description
		if apiErr.Description == "" {
			apiErr.Description = parsed.Message
		}
	}
	return apiErr
}
