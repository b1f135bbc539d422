package comparison

// DefaultOrder is the sort order of categories without one.
const DefaultOrder = 999

// OtherCategory is the title of features without a category.
const OtherCategory = "Other"

// Pricing is the raw pricing shape of a listing.
type Pricing struct {
	Type         string
	StartingFrom *float64
	Min          *float64
	Max          *float64
	Notes        string
}

// RatingInput is a raw rating. Documents store either a bare number or an
// average with a supporting review count.
type RatingInput struct {
	Bare    *float64
	Average *float64
	Count   *int
}

// FeatureCategory is the category a feature belongs to.
type FeatureCategory struct {
	Title string
	Order *int
}

// ProjectionFeature is one feature entry of a listing's capability matrix.
type ProjectionFeature struct {
	Title          string
	Availability   string
	Score          *float64
	Category       FeatureCategory
	LimitationType string
	Notes          string
}

// Projection is the comparison-relevant view of a listing.
type Projection struct {
	Slug              string
	Title             string
	LogoURL           string
	Tagline           string
	Pricing           *Pricing
	Rating            *RatingInput
	WebsiteURL        string
	WorksWith         []Reference
	ServiceAreas      []string
	AlternativesCount *int
	Features          []ProjectionFeature
}

// CategoryGroup is the features of one projection grouped under a category.
type CategoryGroup struct {
	Title    string
	Order    int
	Features []ProjectionFeature
}

func categoryTitle(c FeatureCategory) string {
	if c.Title == "" {
		return OtherCategory
	}
	return c.Title
}

func categoryOrder(c FeatureCategory) int {
	if c.Order == nil {
		return DefaultOrder
	}
	return *c.Order
}
