package comparison

import (
	"maps"
	"sort"
)

// DefaultSummaryFeatures is the size of the headline feature set.
const DefaultSummaryFeatures = 8

// GroupFeaturesByCategory groups the features of one projection by category.
// Groups are sorted by order; groups with equal order keep first-seen order.
func GroupFeaturesByCategory(features []ProjectionFeature) []CategoryGroup {
	index := make(map[string]int)
	var groups []CategoryGroup
	for _, f := range features {
		title := categoryTitle(f.Category)
		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, CategoryGroup{Title: title, Order: categoryOrder(f.Category)})
		}
		groups[i].Features = append(groups[i].Features, f)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Order < groups[j].Order })
	return groups
}

// BuildFeatureGroups merges the feature lists of every projection into category
// groups of rows keyed by feature title. A score present on a later occurrence
// overwrites the stored one. Every slug of allSlugs missing from a row is backfilled
// with AvailabilityNo. Groups are sorted by order; rows keep first-seen order.
func BuildFeatureGroups(projections []Projection, allSlugs []string) []FeatureGroup {
	type group struct {
		title string
		order int
		rows  []*FeatureRow
		index map[string]*FeatureRow
	}

	var (
		groupIndex = make(map[string]*group)
		groups     []*group
	)
	for _, p := range projections {
		for _, cg := range GroupFeaturesByCategory(p.Features) {
			g, ok := groupIndex[cg.Title]
			if !ok {
				g = &group{title: cg.Title, order: cg.Order, index: make(map[string]*FeatureRow)}
				groupIndex[cg.Title] = g
				groups = append(groups, g)
			}

			for _, f := range cg.Features {
				if f.Title == "" {
					continue
				}
				row, ok := g.index[f.Title]
				if !ok {
					row = &FeatureRow{Title: f.Title, Availability: make(map[string]Availability)}
					g.index[f.Title] = row
					g.rows = append(g.rows, row)
				}
				if f.Score != nil {
					s := *f.Score
					row.Score = &s
				}
				row.Availability[p.Slug] = ParseAvailability(f.Availability)
			}
		}
	}

	out := make([]FeatureGroup, 0, len(groups))
	for _, g := range groups {
		fg := FeatureGroup{Title: g.title, Order: g.order, Features: make([]FeatureRow, 0, len(g.rows))}
		for _, row := range g.rows {
			for _, slug := range allSlugs {
				if _, ok := row.Availability[slug]; !ok {
					row.Availability[slug] = AvailabilityNo
				}
			}
			fg.Features = append(fg.Features, *row)
		}
		out = append(out, fg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// BuildSummaryFeatures flattens groups and returns the first n rows sorted by
// group order, then by feature title.
func BuildSummaryFeatures(groups []FeatureGroup, n int) []FeatureRow {
	type ordered struct {
		order int
		row   FeatureRow
	}

	var flat []ordered
	for _, g := range groups {
		for _, r := range g.Features {
			flat = append(flat, ordered{order: g.Order, row: r})
		}
	}
	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].order != flat[j].order {
			return flat[i].order < flat[j].order
		}
		return flat[i].row.Title < flat[j].row.Title
	})

	if n >= 0 && len(flat) > n {
		flat = flat[:n]
	}
	out := make([]FeatureRow, len(flat))
	for i, f := range flat {
		row := f.row
		row.Availability = maps.Clone(row.Availability)
		out[i] = row
	}
	return out
}
