package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brokertools/directory/internal/domain"
	"github.com/brokertools/directory/internal/domain/search/filter"
	"github.com/brokertools/directory/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for unified search queries.
type SearchBuilder struct {
	client *Client

	terms    []string
	types    []string
	typesSet bool

	category    string
	brokerType  string
	listingType string
	subCategory string
	author      string
}

// Terms adds text terms. A result matches when any term prefix-matches one of its
// text fields.
func (b *SearchBuilder) Terms(terms ...string) *SearchBuilder {
	b.terms = append(b.terms, terms...)
	return b
}

// Types restricts the content types. Values are raw document types (directoryListing,
// product, serviceProvider, blog) or result types (software, service, resourceGuide).
// Calling Types with no values searches nothing.
func (b *SearchBuilder) Types(types ...string) *SearchBuilder {
	b.types = append(b.types, types...)
	b.typesSet = true
	return b
}

// Category filters by category title or slug.
func (b *SearchBuilder) Category(v string) *SearchBuilder {
	b.category = v
	return b
}

// BrokerType filters by broker type.
func (b *SearchBuilder) BrokerType(v string) *SearchBuilder {
	b.brokerType = v
	return b
}

// ListingType filters by listing type (software, service, product, resourceGuide).
func (b *SearchBuilder) ListingType(v string) *SearchBuilder {
	b.listingType = v
	return b
}

// SubCategory filters by sub-category.
func (b *SearchBuilder) SubCategory(v string) *SearchBuilder {
	b.subCategory = v
	return b
}

// Author filters by author name.
func (b *SearchBuilder) Author(v string) *SearchBuilder {
	b.author = v
	return b
}

// request validates the builder into a search request.
func (b *SearchBuilder) request() (request.Request, error) {
	f, err := filter.New(b.category, b.brokerType, b.listingType, b.subCategory, b.author)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	types := b.types
	if !b.typesSet {
		types = request.DefaultContentTypes
	}
	req, err := request.New(b.terms, types, f)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return req, nil
}

// Do runs the search and returns the deduplicated results in repository order.
func (b *SearchBuilder) Do(ctx context.Context) ([]Result, error) {
	start := time.Now()
	results, err := b.do(ctx)
	b.client.obs.observe("search", start, err,
		slog.Int("terms", len(b.terms)),
		slog.Int("results", len(results)),
	)
	return results, err
}

func (b *SearchBuilder) do(ctx context.Context) ([]Result, error) {
	req, err := b.request()
	if err != nil {
		return nil, err
	}
	results, err := b.client.search.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// DoRefined runs the search and applies the tab and tag refinement.
func (b *SearchBuilder) DoRefined(ctx context.Context, opts RefineOptions) (RefineOutcome, error) {
	results, err := b.Do(ctx)
	if err != nil {
		return RefineOutcome{}, err
	}
	return Refine(results, opts), nil
}
