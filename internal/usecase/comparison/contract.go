package comparison

import (
	"context"

	domcmp "github.com/brokertools/directory/internal/domain/comparison"
)

// Repository defines the content contract for comparison datasets.
type Repository interface {
	// ListingBySlug returns domain.ErrNotFound when no listing has the slug.
	ListingBySlug(ctx context.Context, slug string) (domcmp.FocalListing, error)
	// ComparisonMatrix fetches the projections of all slugs in a single call.
	ComparisonMatrix(ctx context.Context, slugs []string) ([]domcmp.Projection, error)
}
