package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/result"
)

var (
	errNoIdentity = errors.New("document has neither _id nor slug")
	errNoSlug     = errors.New("projection has no slug")
)

// decodeArray splits a JSON array result into its non-null elements. A null result is empty.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	if isNull(raw) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode result array: %w", err)
	}
	out := items[:0]
	for _, it := range items {
		if !isNull(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func decodeResult(raw json.RawMessage) (result.Result, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return result.Result{}, fmt.Errorf("decode search hit: %w", err)
	}
	var dto searchDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return result.Result{}, fmt.Errorf("decode search hit: %w", err)
	}
	if dto.ID == "" && dto.Slug == "" {
		return result.Result{}, errNoIdentity
	}

	kind, typ := entity.Classify(string(dto.Type), string(dto.ListingType), string(dto.FeaturedLabel))

	var updatedAt time.Time
	if dto.UpdatedAt != "" {
		// Unparseable timestamps leave the zero time.
		updatedAt, _ = time.Parse(time.RFC3339, string(dto.UpdatedAt))
	}

	return result.New(result.Fields{
		ID:            string(dto.ID),
		Slug:          string(dto.Slug),
		RawType:       string(dto.Type),
		Kind:          kind,
		Type:          typ,
		Title:         string(dto.Title),
		Name:          string(dto.Name),
		Description:   string(dto.Description),
		Tagline:       string(dto.Tagline),
		Category:      string(dto.Category),
		Categories:    dto.Categories,
		BadgePriority: dto.BadgePriority.intPtr(),
		FeaturedLabel: string(dto.FeaturedLabel),
		LogoURL:       doc.firstString(logoURLAliases),
		HeroImageURL:  string(dto.HeroImageURL),
		ListingType:   string(dto.ListingType),
		BrokerTypes:   doc.firstStrings(brokerTypeAliases),
		WebsiteURL:    doc.firstString(websiteURLAliases),
		UpdatedAt:     updatedAt,
	}), nil
}

func decodeFocalListing(raw json.RawMessage) (comparison.FocalListing, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return comparison.FocalListing{}, fmt.Errorf("decode listing: %w", err)
	}
	var dto listingDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return comparison.FocalListing{}, fmt.Errorf("decode listing: %w", err)
	}

	f := comparison.FocalListing{
		Slug:         string(dto.Slug),
		Title:        string(dto.Title),
		Tagline:      string(dto.Tagline),
		Description:  string(dto.Description),
		Category:     string(dto.Category.v.Title),
		ListingType:  string(dto.ListingType),
		WebsiteURL:   doc.firstString(websiteURLAliases),
		LogoURL:      doc.firstString(logoURLAliases),
		Badges:       badges(dto.Badges),
		ServiceAreas: titles(dto.ServiceAreas),
		BrokerTypes:  doc.firstStrings(brokerTypeAliases),
		Pricing:      pricing(dto.Pricing),
		WorksWith:    references(dto.WorksWith),
		AuthorName:   string(dto.Author.v.Name),
		EditorNotes:  string(dto.EditorNotes),
		TrustMetrics: comparison.TrustMetrics{
			ResponseTimeHours: doc.firstNumber(responseTimeHoursAliases),
			VerifiedRatio:     doc.firstNumber(verifiedRatioAliases),
			ReviewRecencyDays: doc.firstNumber(reviewRecencyDaysAliases),
		},
	}

	for _, feat := range dto.Features {
		if t := feat.Feature.v.Title; t != "" {
			f.FeatureTitles = append(f.FeatureTitles, string(t))
		}
	}
	for _, alt := range dto.SimilarTo {
		f.Alternatives = append(f.Alternatives, comparison.Alternative{
			Slug:     string(alt.Listing.v.Slug),
			Title:    string(alt.Listing.v.Title),
			LogoURL:  string(alt.Listing.v.LogoURL),
			Priority: alt.Priority.intPtr(),
		})
	}
	for _, p := range dto.Providers {
		src, err := decodeProvider(p)
		if err != nil {
			continue
		}
		f.Providers = append(f.Providers, src)
	}
	return f, nil
}

func decodeProvider(raw json.RawMessage) (comparison.ProviderSource, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return comparison.ProviderSource{}, fmt.Errorf("decode provider: %w", err)
	}
	var dto providerDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return comparison.ProviderSource{}, fmt.Errorf("decode provider: %w", err)
	}
	return comparison.ProviderSource{
		ID:          doc.firstString(idAliases),
		Name:        doc.firstString(nameAliases),
		Slug:        string(dto.Slug),
		Description: string(dto.Description),
		LogoURL:     doc.firstString(logoURLAliases),
		WebsiteURL:  doc.firstString(websiteURLAliases),
		Rating:      rating(dto.Rating),
		ViewCount:   dto.ViewCount.intPtr(),
		BrokerTypes: doc.firstStrings(brokerTypeAliases),
		Categories:  dto.Categories,
		Badges:      badges(dto.Badges),
	}, nil
}

func decodeProjection(raw json.RawMessage) (comparison.Projection, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return comparison.Projection{}, fmt.Errorf("decode projection: %w", err)
	}
	var dto projectionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return comparison.Projection{}, fmt.Errorf("decode projection: %w", err)
	}
	if dto.Slug == "" {
		return comparison.Projection{}, errNoSlug
	}

	p := comparison.Projection{
		Slug:              string(dto.Slug),
		Title:             string(dto.Title),
		LogoURL:           doc.firstString(logoURLAliases),
		Tagline:           string(dto.Tagline),
		Pricing:           pricing(dto.Pricing),
		Rating:            rating(dto.Rating),
		WebsiteURL:        doc.firstString(websiteURLAliases),
		WorksWith:         references(dto.WorksWith),
		ServiceAreas:      titles(dto.ServiceAreas),
		AlternativesCount: dto.AlternativesCount.intPtr(),
	}
	for _, feat := range dto.Features {
		ref := feat.Feature.v
		p.Features = append(p.Features, comparison.ProjectionFeature{
			Title:        string(ref.Title),
			Availability: string(feat.Availability),
			Score:        feat.Score.v,
			Category: comparison.FeatureCategory{
				Title: string(ref.Category.v.Title),
				Order: ref.Category.v.Order.intPtr(),
			},
			LimitationType: string(feat.LimitationType),
			Notes:          string(feat.Notes),
		})
	}
	return p, nil
}

func pricing(o optional[pricingDTO]) *comparison.Pricing {
	if !o.ok {
		return nil
	}
	return &comparison.Pricing{
		Type:         string(o.v.Type),
		StartingFrom: o.v.StartingFrom.v,
		Min:          o.v.Min.v,
		Max:          o.v.Max.v,
		Notes:        string(o.v.Notes),
	}
}

func rating(r ratingDTO) *comparison.RatingInput {
	if r.bare == nil && r.average == nil && r.count == nil {
		return nil
	}
	return &comparison.RatingInput{Bare: r.bare, Average: r.average, Count: r.count}
}

func badges(in list[badgeDTO]) []comparison.Badge {
	out := make([]comparison.Badge, 0, len(in))
	for _, b := range in {
		out = append(out, comparison.Badge{Title: string(b.Title), Color: string(b.Color)})
	}
	return out
}

func references(in list[referenceDTO]) []comparison.Reference {
	out := make([]comparison.Reference, 0, len(in))
	for _, r := range in {
		out = append(out, comparison.Reference{Name: string(r.Title), Slug: string(r.Slug)})
	}
	return out
}

func titles(in list[titled]) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t != "" {
			out = append(out, string(t))
		}
	}
	return out
}
