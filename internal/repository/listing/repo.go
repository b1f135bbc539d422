// Package listing reads directory listings from the content repository and maps the
// heterogeneous document shapes onto domain values.
package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/domain"
	"github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/search/request"
	"github.com/brokertools/directory/internal/domain/search/result"
	"github.com/brokertools/directory/internal/logger"
)

// Operation names, used for metrics, logs and repository errors.
const (
	OpSearch           = "search"
	OpListingBySlug    = "listing_by_slug"
	OpComparisonMatrix = "comparison_matrix"
)

// Repo implements the search and comparison repositories on top of a content.Fetcher.
type Repo struct {
	fetcher content.Fetcher
}

// New creates a listing repository.
func New(f content.Fetcher) *Repo {
	return &Repo{fetcher: f}
}

// Search runs the unified search query. Results keep repository order. Hits that
// cannot be decoded are skipped.
func (r *Repo) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	items, err := r.fetchArray(ctx, OpSearch, searchQuery, req.Params())
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]result.Result, 0, len(items))
	for i, item := range items {
		res, err := decodeResult(item)
		if err != nil {
			log.Warn("Skipping malformed search hit", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// ListingBySlug fetches the focal listing of a comparison page.
// Returns domain.ErrNotFound when no listing has the slug.
func (r *Repo) ListingBySlug(ctx context.Context, slug string) (comparison.FocalListing, error) {
	raw, err := r.fetch(ctx, OpListingBySlug, listingBySlugQuery, map[string]any{paramSlug: slug})
	if err != nil {
		return comparison.FocalListing{}, err
	}
	if isNull(raw) {
		return comparison.FocalListing{}, fmt.Errorf("listing %q: %w", slug, domain.ErrNotFound)
	}

	f, err := decodeFocalListing(raw)
	if err != nil {
		return comparison.FocalListing{}, domain.NewRepositoryError(OpListingBySlug,
			fmt.Errorf("%w: %w", domain.ErrMalformedProjection, err))
	}
	if f.Slug == "" {
		f.Slug = slug
	}
	return f, nil
}

// ComparisonMatrix fetches the comparison projections of all slugs in one query.
// Slugs without a listing are absent from the result; malformed entries are skipped.
func (r *Repo) ComparisonMatrix(ctx context.Context, slugs []string) ([]comparison.Projection, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	items, err := r.fetchArray(ctx, OpComparisonMatrix, comparisonQuery, map[string]any{paramSlugs: slugs})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]comparison.Projection, 0, len(items))
	for i, item := range items {
		p, err := decodeProjection(item)
		if err != nil {
			log.Warn("Skipping malformed comparison projection", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) fetch(ctx context.Context, op, query string, params map[string]any) (json.RawMessage, error) {
	raw, err := r.fetcher.Fetch(content.WithOperation(ctx, op), query, params)
	if err != nil {
		return nil, domain.NewRepositoryError(op, err)
	}
	return raw, nil
}

func (r *Repo) fetchArray(ctx context.Context, op, query string, params map[string]any) ([]json.RawMessage, error) {
	raw, err := r.fetch(ctx, op, query, params)
	if err != nil {
		return nil, err
	}
	items, err := decodeArray(raw)
	if err != nil {
		return nil, domain.NewRepositoryError(op, fmt.Errorf("%w: %w", domain.ErrMalformedProjection, err))
	}
	return items, nil
}
