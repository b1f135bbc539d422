package comparison

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brokertools/directory/internal/domain"
	domcmp "github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/logger"
	"github.com/brokertools/directory/internal/metrics"
)

// Options bounds the sizes of the comparison sections.
type Options struct {
	MaxAlternatives     int
	SummaryAlternatives int
	SummaryFeatures     int
	MaxProviders        int
	SuggestedProducts   int
}

// DefaultOptions returns the standard comparison page limits.
func DefaultOptions() Options {
	return Options{
		MaxAlternatives:     domcmp.DefaultMaxAlternatives,
		SummaryAlternatives: domcmp.DefaultSummaryAlternatives,
		SummaryFeatures:     domcmp.DefaultSummaryFeatures,
		MaxProviders:        domcmp.DefaultMaxProviders,
		SuggestedProducts:   domcmp.DefaultSuggestedProducts,
	}
}

// withDefaults replaces non-positive limits with the defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = d.MaxAlternatives
	}
	if o.SummaryAlternatives <= 0 {
		o.SummaryAlternatives = d.SummaryAlternatives
	}
	if o.SummaryFeatures <= 0 {
		o.SummaryFeatures = d.SummaryFeatures
	}
	if o.MaxProviders <= 0 {
		o.MaxProviders = d.MaxProviders
	}
	if o.SuggestedProducts <= 0 {
		o.SuggestedProducts = d.SuggestedProducts
	}
	return o
}

// Service builds the comparison dataset of a listing page.
type Service struct {
	repo Repository
	opts Options
}

// New creates a comparison service.
func New(repo Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts.withDefaults()}
}

// Build assembles the comparison dataset of the listing with the given slug.
//
// The focal listing and the projections of the comparison set are fetched in two
// sequential calls. Only a failed focal fetch fails the build: products whose
// projection is missing, or all products when the matrix call fails, are served
// unscored and the dataset is marked degraded in the latter case.
func (s *Service) Build(ctx context.Context, slug string) (domcmp.Dataset, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domcmp.Dataset{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidRequest)
	}
	ctx = logger.WithFields(ctx, zap.String("slug", slug))

	focal, err := s.repo.ListingBySlug(ctx, slug)
	if err != nil {
		return domcmp.Dataset{}, fmt.Errorf("get listing: %w", err)
	}
	focal.Slug = slug

	altSlugs := domcmp.AlternativeSlugs(focal.Alternatives, s.opts.MaxAlternatives)
	slugs := domcmp.ComparisonSlugs(slug, altSlugs)

	log := logger.FromContext(ctx)
	degraded := false
	projections, err := s.repo.ComparisonMatrix(ctx, slugs)
	if err != nil {
		log.Warn("Comparison matrix fetch failed, degrading to unscored",
			zap.Int("products", len(slugs)),
			zap.Error(err),
		)
		metrics.ComparisonDegradedTotal.WithLabelValues("matrix_error").Inc()
		projections = nil
		degraded = true
	}

	bySlug := make(map[string]domcmp.Projection, len(projections))
	for _, p := range projections {
		if _, dup := bySlug[p.Slug]; !dup {
			bySlug[p.Slug] = p
		}
	}
	alternatives := make(map[string]domcmp.Alternative, len(focal.Alternatives))
	for _, a := range focal.Alternatives {
		if _, dup := alternatives[a.Slug]; !dup && a.Slug != "" {
			alternatives[a.Slug] = a
		}
	}

	products := make([]domcmp.Product, 0, len(slugs))
	matrix := make([]domcmp.Projection, 0, len(slugs))
	for _, sl := range slugs {
		if p, ok := bySlug[sl]; ok {
			products = append(products, domcmp.ProductFromProjection(p, slug))
			matrix = append(matrix, p)
			continue
		}
		if !degraded {
			log.Debug("Comparison projection missing", zap.String("slug", sl))
			metrics.ComparisonDegradedTotal.WithLabelValues("missing_projection").Inc()
		}
		if sl == slug {
			products = append(products, domcmp.FocalProduct(focal))
		} else {
			products = append(products, domcmp.AlternativeProduct(alternatives[sl]))
		}
	}
	domcmp.SortBySlugOrder(products, slugs)

	productSlugs := make([]string, len(products))
	for i, p := range products {
		productSlugs[i] = p.Slug
	}
	groups := domcmp.BuildFeatureGroups(matrix, productSlugs)

	ds := domcmp.Dataset{
		Listing:            domcmp.SummarizeListing(focal),
		ComparisonProducts: products,
		SummaryProducts:    domcmp.SummaryProducts(products, slug, altSlugs, s.opts.SummaryAlternatives),
		SuggestedProducts:  domcmp.FirstProducts(products, s.opts.SuggestedProducts),
		FeatureGroups:      groups,
		SummaryFeatures:    domcmp.BuildSummaryFeatures(groups, s.opts.SummaryFeatures),
		Providers:          []domcmp.ProviderCard{},
		Degraded:           degraded,
	}
	if _, typ := entity.Classify(entity.RawDirectoryListing, focal.ListingType, ""); typ == entity.Software {
		ds.Providers = domcmp.ProviderCards(focal.Providers, s.opts.MaxProviders)
	}
	return ds, nil
}
