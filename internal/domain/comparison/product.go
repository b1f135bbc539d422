// Package comparison builds the normalized comparison dataset of a focal listing and
// its declared alternatives: price text, ratings, rubric scores and feature matrices.
package comparison

import "strings"

// Availability is the tri-state availability of a feature for one product.
type Availability string

// Availability values.
const (
	AvailabilityYes     Availability = "yes"
	AvailabilityPartial Availability = "partial"
	AvailabilityNo      Availability = "no"
)

// ParseAvailability normalizes a raw availability value. Unknown values are "no".
func ParseAvailability(s string) Availability {
	switch a := Availability(strings.ToLower(strings.TrimSpace(s))); a {
	case AvailabilityYes, AvailabilityPartial:
		return a
	default:
		return AvailabilityNo
	}
}

// Reference points to another listing, e.g. an integration in "works with".
type Reference struct {
	Name string
	Slug string
}

// RubricCategoryScore is the rounded mean feature score of one category.
type RubricCategoryScore struct {
	Title string
	Order int
	Score float64
}

// Product is one column of the comparison table.
type Product struct {
	Slug                 string
	Name                 string
	LogoURL              string
	Tagline              string
	PriceText            string
	Rating               *float64
	IsCurrent            bool
	WebsiteURL           string
	WorksWith            []Reference
	ServiceAreas         []string
	AlternativesCount    *int
	OverallRubricScore   *float64
	RubricCategoryScores []RubricCategoryScore
}

// IsScored reports whether the product carries rubric data.
func (p Product) IsScored() bool { return p.OverallRubricScore != nil }

// FeatureRow is the availability of one feature across every product of a set.
type FeatureRow struct {
	Title        string
	Score        *float64
	Availability map[string]Availability
}

// FeatureGroup is an ordered category of feature rows.
type FeatureGroup struct {
	Title    string
	Order    int
	Features []FeatureRow
}

// Dataset is everything the comparison page of a listing needs.
type Dataset struct {
	Listing            Listing
	ComparisonProducts []Product
	SummaryProducts    []Product
	SuggestedProducts  []Product
	FeatureGroups      []FeatureGroup
	SummaryFeatures    []FeatureRow
	Providers          []ProviderCard
	// Degraded is set when rubric data could not be fetched for any product.
	Degraded bool
}
