package directory

import (
	domcmp "github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/search/refine"
)

// Refine filters search results by category tags and tab and sorts them for display.
// Counts cover the tag-filtered set before the tab filter. results is not modified.
func Refine(results []Result, opts RefineOptions) RefineOutcome {
	return refine.Apply(results, opts)
}

// Categories returns the distinct category labels of results in first-seen order.
func Categories(results []Result) []string {
	return refine.Categories(results)
}

// BuildFeatureGroups merges the features of every projection into category groups.
// Every slug of allSlugs missing from a row is backfilled with "no".
func BuildFeatureGroups(projections []Projection, allSlugs []string) []FeatureGroup {
	return domcmp.BuildFeatureGroups(projections, allSlugs)
}
