package directory

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	projectID  string
	dataset    string
	apiVersion string
	token      string
	useCDN     bool
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	rps        float64
	burst      int

	fetcher Fetcher

	cacheDriver   string // "memory" or "redis"
	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	cachePrefix   string

	maxAlternatives int
	maxProviders    int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithProject sets the Sanity project and dataset to query.
func WithProject(projectID, dataset string) Option {
	return optionFunc(func(c *clientConfig) {
		c.projectID = projectID
		c.dataset = dataset
	})
}

// WithToken sets the API token. Authenticated queries bypass the CDN.
func WithToken(token string) Option {
	return optionFunc(func(c *clientConfig) {
		c.token = token
	})
}

// WithAPIVersion pins the query API version (e.g. "2025-10-01").
func WithAPIVersion(v string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiVersion = v
	})
}

// WithCDN queries the API CDN instead of the live API.
func WithCDN() Option {
	return optionFunc(func(c *clientConfig) {
		c.useCDN = true
	})
}

// WithBaseURL overrides the API host, e.g. for a proxy or tests.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithHTTPClient sets the HTTP client used for queries.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-query timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRateLimit bounds outbound queries per second. Default: unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return optionFunc(func(c *clientConfig) {
		c.rps = rps
		c.burst = burst
	})
}

// WithFetcher serves queries from f instead of the Sanity HTTP API.
// Project options are ignored when set.
func WithFetcher(f Fetcher) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetcher = f
	})
}

// WithMemoryCache caches query results in process for ttl.
func WithMemoryCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "memory"
		c.cacheTTL = ttl
	})
}

// WithRedisCache caches query results in Redis for ttl.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithCacheKeyPrefix namespaces cache keys. Default: "directory:content:".
func WithCacheKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cachePrefix = prefix
	})
}

// WithMaxAlternatives bounds the alternatives of a comparison set. Default: 6.
func WithMaxAlternatives(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxAlternatives = n
	})
}

// WithMaxProviders bounds the provider cards of a software comparison. Default: 4.
func WithMaxProviders(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxProviders = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
