// Package cache decorates a content.Fetcher with a TTL cache of raw query results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/db"
)

// DefaultKeyPrefix namespaces cache keys in a shared store.
const DefaultKeyPrefix = "directory:content:"

// store is the consumer interface for the content cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetcher caches query results in a key-value store. Concurrent identical
// queries on a miss share one upstream fetch.
type Fetcher struct {
	inner      content.Fetcher
	store      store
	ttl        time.Duration
	prefix     string
	group      singleflight.Group
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"shared"), passed explicitly.
func New(
	inner content.Fetcher,
	s store,
	ttl time.Duration,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Fetcher {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch returns a cached result or delegates to the inner fetcher. Errors are never cached.
func (f *Fetcher) Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	key, err := f.cacheKey(query, params)
	if err != nil {
		return nil, err
	}

	if data, ok := f.getFromCache(ctx, key); ok {
		f.incCache("hit")
		return data, nil
	}
	f.incCache("miss")

	// The shared fetch is bounded by the upstream client timeout, not by any caller's ctx.
	op := content.OperationFromContext(ctx)
	fetchCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		raw, err := f.inner.Fetch(fetchCtx, query, params)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped below
		}
		f.putToCache(fetchCtx, key, raw)
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch %s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Shared {
			f.incCache("shared")
		}
		if res.Err != nil {
			return nil, fmt.Errorf("fetch %s: %w", op, res.Err)
		}
		raw, _ := res.Val.(json.RawMessage)
		// Callers of a shared fetch must not alias one buffer.
		return append(json.RawMessage(nil), raw...), nil
	}
}

func (f *Fetcher) incCache(result string) {
	if f.cacheTotal != nil {
		f.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (f *Fetcher) cacheKey(query string, params map[string]any) (string, error) {
	// encoding/json sorts map keys, so equal params hash equally.
	p, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode cache key params: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write(p)
	return f.prefix + hex.EncodeToString(h.Sum(nil)), nil
}

func (f *Fetcher) getFromCache(ctx context.Context, key string) (json.RawMessage, bool) {
	data, err := f.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			f.logger.Warn("Failed to get cached content", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 || !json.Valid(data) {
		return nil, false
	}
	return data, true
}

func (f *Fetcher) putToCache(ctx context.Context, key string, raw json.RawMessage) {
	if err := f.store.SetWithTTL(ctx, key, raw, f.ttl); err != nil {
		f.logger.Warn("Failed to cache content", zap.String("key", key), zap.Error(err))
	}
}
