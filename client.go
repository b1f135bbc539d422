// Package directory searches a broker tools directory and builds listing comparison
// datasets on top of a Sanity content repository.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/content/cache"
	"github.com/brokertools/directory/internal/content/sanity"
	"github.com/brokertools/directory/internal/db"
	"github.com/brokertools/directory/internal/db/memory"
	dbRedis "github.com/brokertools/directory/internal/db/redis"
	"github.com/brokertools/directory/internal/metrics"
	"github.com/brokertools/directory/internal/repository/listing"
	comparisonuc "github.com/brokertools/directory/internal/usecase/comparison"
	searchuc "github.com/brokertools/directory/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Minute
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the directory entry point. It is safe for concurrent use.
type Client struct {
	store      db.Store
	content    pinger
	search     *searchuc.Service
	comparison *comparisonuc.Service
	obs        *observer
}

// New creates a Client. Either WithProject or WithFetcher is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	fetcher, contentPinger, err := createFetcher(cfg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if store != nil {
		ttl := cfg.cacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fetcher = cache.New(fetcher, store, ttl, cfg.cachePrefix, metrics.ContentCacheTotal, zap.NewNop())
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	repo := listing.New(fetcher)
	cmpOpts := comparisonuc.DefaultOptions()
	if cfg.maxAlternatives > 0 {
		cmpOpts.MaxAlternatives = cfg.maxAlternatives
	}
	if cfg.maxProviders > 0 {
		cmpOpts.MaxProviders = cfg.maxProviders
	}

	return &Client{
		store:      store,
		content:    contentPinger,
		search:     searchuc.New(repo),
		comparison: comparisonuc.New(repo, cmpOpts),
		obs:        obs,
	}, nil
}

func createFetcher(cfg *clientConfig) (content.Fetcher, pinger, error) {
	if cfg.fetcher != nil {
		p, _ := cfg.fetcher.(pinger)
		return cfg.fetcher, p, nil
	}
	if cfg.projectID == "" && cfg.baseURL == "" {
		return nil, nil, errors.New("directory: project id required (use WithProject or WithFetcher)")
	}
	c, err := sanity.NewClient(&sanity.Config{
		ProjectID:         cfg.projectID,
		Dataset:           cfg.dataset,
		APIVersion:        cfg.apiVersion,
		Token:             cfg.token,
		UseCDN:            cfg.useCDN,
		Timeout:           cfg.timeout,
		RequestsPerSecond: cfg.rps,
		Burst:             cfg.burst,
		BaseURL:           cfg.baseURL,
		HTTPClient:        cfg.httpClient,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("directory: create content client: %w", err)
	}
	return c, c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.cacheDriver {
	case "":
		return nil, nil
	case "memory":
		ttl := cfg.cacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		return memory.NewStore(ttl, 2*ttl), nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("directory: create redis store: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("directory: redis not ready: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("directory: unknown cache driver %q", cfg.cacheDriver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks content API and cache connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c.content != nil {
		if err := c.content.Ping(ctx); err != nil {
			return fmt.Errorf("ping content: %w", err)
		}
	}
	if c.store != nil {
		if err := c.store.Ping(ctx); err != nil {
			return fmt.Errorf("ping cache: %w", err)
		}
	}
	return nil
}

// Search starts a unified search over the default content types.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{client: c}
}

// Compare builds the comparison dataset of the listing with the given slug.
// Returns ErrNotFound when no listing has the slug.
func (c *Client) Compare(ctx context.Context, slug string) (Dataset, error) {
	start := time.Now()
	ds, err := c.comparison.Build(ctx, slug)
	c.obs.observe("compare", start, err,
		slog.String("slug", slug),
		slog.Int("products", len(ds.ComparisonProducts)),
		slog.Bool("degraded", ds.Degraded),
	)
	if err != nil {
		return Dataset{}, fmt.Errorf("compare %q: %w", slug, err)
	}
	return ds, nil
}
