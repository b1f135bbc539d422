package comparison

import "sort"

// Comparison set limits.
const (
	DefaultPriority            = 999
	DefaultMaxAlternatives     = 6
	DefaultSummaryAlternatives = 2
	DefaultSuggestedProducts   = 6
)

// AlternativeSlugs returns the slugs of the declared alternatives sorted by priority
// (missing priority sorts as DefaultPriority), at most limit of them. Alternatives
// without a slug are dropped.
func AlternativeSlugs(alts []Alternative, limit int) []string {
	sorted := make([]Alternative, 0, len(alts))
	for _, a := range alts {
		if a.Slug != "" {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) < priorityOf(sorted[j])
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]string, len(sorted))
	for i, a := range sorted {
		out[i] = a.Slug
	}
	return out
}

func priorityOf(a Alternative) int {
	if a.Priority == nil {
		return DefaultPriority
	}
	return *a.Priority
}

// ComparisonSlugs returns the focal slug followed by the alternatives, duplicates removed.
func ComparisonSlugs(focal string, alternatives []string) []string {
	seen := map[string]bool{focal: true}
	out := []string{focal}
	for _, s := range alternatives {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ProductFromProjection scores a fetched projection.
func ProductFromProjection(p Projection, focal string) Product {
	scores := RubricCategoryScores(p.Features)
	return Product{
		Slug:                 p.Slug,
		Name:                 p.Title,
		LogoURL:              p.LogoURL,
		Tagline:              p.Tagline,
		PriceText:            FormatPrice(p.Pricing),
		Rating:               NormalizeRating(p.Rating).Average,
		IsCurrent:            p.Slug == focal,
		WebsiteURL:           p.WebsiteURL,
		WorksWith:            p.WorksWith,
		ServiceAreas:         p.ServiceAreas,
		AlternativesCount:    p.AlternativesCount,
		OverallRubricScore:   OverallRubricScore(scores),
		RubricCategoryScores: scores,
	}
}

// FocalProduct is the unscored product synthesized from the focal listing when its
// projection is unavailable.
func FocalProduct(l FocalListing) Product {
	return Product{
		Slug:                 l.Slug,
		Name:                 l.Title,
		LogoURL:              l.LogoURL,
		PriceText:            FormatPrice(l.Pricing),
		IsCurrent:            true,
		RubricCategoryScores: []RubricCategoryScore{},
	}
}

// AlternativeProduct is the unscored product synthesized from an alternative's
// reference data when its projection is unavailable.
func AlternativeProduct(a Alternative) Product {
	return Product{
		Slug:                 a.Slug,
		Name:                 a.Title,
		LogoURL:              a.LogoURL,
		PriceText:            DefaultPriceText,
		RubricCategoryScores: []RubricCategoryScore{},
	}
}

// SortBySlugOrder stable-sorts products by the position of their slug in order.
// Unknown slugs sort last.
func SortBySlugOrder(products []Product, order []string) {
	pos := make(map[string]int, len(order))
	for i, s := range order {
		pos[s] = i
	}
	rank := func(slug string) int {
		if i, ok := pos[slug]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return rank(products[i].Slug) < rank(products[j].Slug)
	})
}

// SummaryProducts returns the focal product and the first n alternatives, in the order
// of products.
func SummaryProducts(products []Product, focal string, alternatives []string, n int) []Product {
	keep := map[string]bool{focal: true}
	for i, s := range alternatives {
		if i >= n {
			break
		}
		keep[s] = true
	}
	out := make([]Product, 0, len(keep))
	for _, p := range products {
		if keep[p.Slug] {
			out = append(out, p)
		}
	}
	return out
}

// FirstProducts returns up to n leading products.
func FirstProducts(products []Product, n int) []Product {
	if n >= 0 && len(products) > n {
		products = products[:n]
	}
	return append([]Product(nil), products...)
}
