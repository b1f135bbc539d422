package chi

import (
	"time"

	domcmp "github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/search/refine"
	"github.com/brokertools/directory/internal/domain/search/result"
)

// SearchResultItem is one search hit.
type SearchResultItem struct {
	ID            string     `json:"_id,omitempty"`
	Type          string     `json:"_type"`
	ResultType    string     `json:"resultType"`
	Slug          string     `json:"slug,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Tagline       string     `json:"tagline,omitempty"`
	Category      string     `json:"category,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	BadgePriority *int       `json:"badgePriority,omitempty"`
	FeaturedLabel string     `json:"featuredLabel,omitempty"`
	LogoURL       string     `json:"logoUrl,omitempty"`
	HeroImageURL  string     `json:"heroImageUrl,omitempty"`
	ListingType   string     `json:"listingType,omitempty"`
	BrokerTypes   []string   `json:"brokerTypes,omitempty"`
	WebsiteURL    string     `json:"websiteUrl,omitempty"`
	UpdatedAt     *time.Time `json:"_updatedAt,omitempty"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Results    []SearchResultItem `json:"results"`
	Counts     refine.Counts      `json:"counts"`
	Categories []string           `json:"categories"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResultToDTO(r *result.Result) SearchResultItem {
	item := SearchResultItem{
		ID:            r.ID(),
		Type:          r.RawType(),
		ResultType:    string(r.Type()),
		Slug:          r.Slug(),
		Title:         r.DisplayTitle(),
		Description:   r.Description(),
		Tagline:       r.Tagline(),
		Category:      r.Category(),
		Categories:    r.Categories(),
		BadgePriority: r.BadgePriority(),
		FeaturedLabel: r.FeaturedLabel(),
		LogoURL:       r.LogoURL(),
		HeroImageURL:  r.HeroImageURL(),
		ListingType:   r.ListingType(),
		BrokerTypes:   r.BrokerTypes(),
		WebsiteURL:    r.WebsiteURL(),
	}
	if t := r.UpdatedAt(); !t.IsZero() {
		item.UpdatedAt = &t
	}
	return item
}

func searchResponseFromOutcome(out refine.Outcome, all []result.Result) SearchResponse {
	items := make([]SearchResultItem, len(out.Results))
	for i := range out.Results {
		items[i] = searchResultToDTO(&out.Results[i])
	}
	categories := refine.Categories(all)
	if categories == nil {
		categories = []string{}
	}
	return SearchResponse{Results: items, Counts: out.Counts, Categories: categories}
}

// Comparison dataset wire shapes.

// BadgeDTO is a listing highlight.
type BadgeDTO struct {
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// ReferenceDTO is a reference to another listing.
type ReferenceDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// TrustMetricsDTO are the editorial trust signals.
type TrustMetricsDTO struct {
	ResponseTimeHours *float64 `json:"responseTimeHours"`
	VerifiedRatio     *float64 `json:"verifiedRatio"`
	ReviewRecencyDays *float64 `json:"reviewRecencyDays"`
}

// ListingDTO is the listing header.
type ListingDTO struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Tagline      string          `json:"tagline"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	WebsiteURL   string          `json:"websiteUrl"`
	LogoURL      string          `json:"logoUrl"`
	Badges       []BadgeDTO      `json:"badges"`
	ServiceAreas []string        `json:"serviceAreas"`
	BrokerTypes  []string        `json:"brokerTypes"`
	Features     []string        `json:"features"`
	Pricing      PricingDTO      `json:"pricing"`
	WorksWith    []ReferenceDTO  `json:"worksWith"`
	Editor       EditorDTO       `json:"editor"`
	TrustMetrics TrustMetricsDTO `json:"trustMetrics"`
}

// PricingDTO is the listing pricing summary.
type PricingDTO struct {
	Model string   `json:"model"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Notes string   `json:"notes"`
}

// EditorDTO is the editorial credit.
type EditorDTO struct {
	Author string `json:"author"`
	Notes  string `json:"notes"`
}

// RubricCategoryScoreDTO is the score of one feature category.
type RubricCategoryScoreDTO struct {
	Title string  `json:"title"`
	Order int     `json:"order"`
	Score float64 `json:"score"`
}

// ProductDTO is one comparison column.
type ProductDTO struct {
	Slug                 string                   `json:"slug"`
	Name                 string                   `json:"name"`
	LogoURL              string                   `json:"logoUrl"`
	Tagline              string                   `json:"tagline"`
	PriceText            string                   `json:"priceText"`
	Rating               *float64                 `json:"rating"`
	IsCurrent            bool                     `json:"isCurrent"`
	WebsiteURL           string                   `json:"websiteUrl"`
	WorksWith            []ReferenceDTO           `json:"worksWith"`
	ServiceAreas         []string                 `json:"serviceAreas"`
	AlternativesCount    *int                     `json:"alternativesCount"`
	OverallRubricScore   *float64                 `json:"overallRubricScore"`
	RubricCategoryScores []RubricCategoryScoreDTO `json:"rubricCategoryScores"`
}

// FeatureRowDTO is one feature across the comparison set.
type FeatureRowDTO struct {
	Title        string            `json:"title"`
	Score        *float64          `json:"score"`
	Availability map[string]string `json:"availability"`
}

// FeatureGroupDTO is an ordered category of feature rows.
type FeatureGroupDTO struct {
	Title    string          `json:"title"`
	Order    int             `json:"order"`
	Features []FeatureRowDTO `json:"features"`
}

// ProviderCardDTO is a service provider tile.
type ProviderCardDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	LogoURL     string     `json:"logoUrl"`
	Rating      *float64   `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	Tags        []string   `json:"tags"`
	Location    string     `json:"location"`
	WebsiteURL  string     `json:"websiteUrl"`
	Badges      []BadgeDTO `json:"badges"`
}

// DatasetResponse is the body of GET /api/v1/listings/{slug}/comparison.
type DatasetResponse struct {
	Listing            ListingDTO        `json:"listing"`
	ComparisonProducts []ProductDTO      `json:"comparisonProducts"`
	SummaryProducts    []ProductDTO      `json:"summaryProducts"`
	SuggestedProducts  []ProductDTO      `json:"suggestedProducts"`
	FeatureGroups      []FeatureGroupDTO `json:"featureGroups"`
	SummaryFeatures    []FeatureRowDTO   `json:"summaryFeatures"`
	Providers          []ProviderCardDTO `json:"providers"`
	Degraded           bool              `json:"degraded,omitempty"`
}

func datasetToDTO(d *domcmp.Dataset) DatasetResponse {
	groups := make([]FeatureGroupDTO, len(d.FeatureGroups))
	for i, g := range d.FeatureGroups {
		groups[i] = FeatureGroupDTO{Title: g.Title, Order: g.Order, Features: featureRowsToDTO(g.Features)}
	}
	providers := make([]ProviderCardDTO, len(d.Providers))
	for i, p := range d.Providers {
		providers[i] = ProviderCardDTO{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			LogoURL:     p.LogoURL,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Tags:        nonNil(p.Tags),
			Location:    p.Location,
			WebsiteURL:  p.WebsiteURL,
			Badges:      badgesToDTO(p.Badges),
		}
	}
	return DatasetResponse{
		Listing:            listingToDTO(&d.Listing),
		ComparisonProducts: productsToDTO(d.ComparisonProducts),
		SummaryProducts:    productsToDTO(d.SummaryProducts),
		SuggestedProducts:  productsToDTO(d.SuggestedProducts),
		FeatureGroups:      groups,
		SummaryFeatures:    featureRowsToDTO(d.SummaryFeatures),
		Providers:          providers,
		Degraded:           d.Degraded,
	}
}

func listingToDTO(l *domcmp.Listing) ListingDTO {
	return ListingDTO{
		Name:         l.Name,
		Slug:         l.Slug,
		Tagline:      l.Tagline,
		Description:  l.Description,
		Category:     l.Category,
		WebsiteURL:   l.WebsiteURL,
		LogoURL:      l.LogoURL,
		Badges:       badgesToDTO(l.Badges),
		ServiceAreas: nonNil(l.ServiceAreas),
		BrokerTypes:  nonNil(l.BrokerTypes),
		Features:     nonNil(l.Features),
		Pricing: PricingDTO{
			Model: l.Pricing.Model,
			Min:   l.Pricing.Min,
			Max:   l.Pricing.Max,
			Notes: l.Pricing.Notes,
		},
		WorksWith: referencesToDTO(l.WorksWith),
		Editor:    EditorDTO{Author: l.Editor.Author, Notes: l.Editor.Notes},
		TrustMetrics: TrustMetricsDTO{
			ResponseTimeHours: l.TrustMetrics.ResponseTimeHours,
			VerifiedRatio:     l.TrustMetrics.VerifiedRatio,
			ReviewRecencyDays: l.TrustMetrics.ReviewRecencyDays,
		},
	}
}

func productsToDTO(in []domcmp.Product) []ProductDTO {
	out := make([]ProductDTO, len(in))
	for i, p := range in {
		scores := make([]RubricCategoryScoreDTO, len(p.RubricCategoryScores))
		for j, s := range p.RubricCategoryScores {
			scores[j] = RubricCategoryScoreDTO{Title: s.Title, Order: s.Order, Score: s.Score}
		}
		out[i] = ProductDTO{
			Slug:                 p.Slug,
			Name:                 p.Name,
			LogoURL:              p.LogoURL,
			Tagline:              p.Tagline,
			PriceText:            p.PriceText,
			Rating:               p.Rating,
			IsCurrent:            p.IsCurrent,
			WebsiteURL:           p.WebsiteURL,
			WorksWith:            referencesToDTO(p.WorksWith),
			ServiceAreas:         nonNil(p.ServiceAreas),
			AlternativesCount:    p.AlternativesCount,
			OverallRubricScore:   p.OverallRubricScore,
			RubricCategoryScores: scores,
		}
	}
	return out
}

func featureRowsToDTO(in []domcmp.FeatureRow) []FeatureRowDTO {
	out := make([]FeatureRowDTO, len(in))
	for i, r := range in {
		avail := make(map[string]string, len(r.Availability))
		for slug, a := range r.Availability {
			avail[slug] = string(a)
		}
		out[i] = FeatureRowDTO{Title: r.Title, Score: r.Score, Availability: avail}
	}
	return out
}

func badgesToDTO(in []domcmp.Badge) []BadgeDTO {
	out := make([]BadgeDTO, len(in))
	for i, b := range in {
		out[i] = BadgeDTO{Title: b.Title, Color: b.Color}
	}
	return out
}

func referencesToDTO(in []domcmp.Reference) []ReferenceDTO {
	out := make([]ReferenceDTO, len(in))
	for i, r := range in {
		out[i] = ReferenceDTO{Name: r.Name, Slug: r.Slug}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
