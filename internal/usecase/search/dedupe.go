package search

import (
	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/result"
)

// PriorityFunc ranks a result for de-duplication. Lower wins.
type PriorityFunc func(r *result.Result) int

// KindPriority ranks results by the schema shape they were stored under.
func KindPriority(r *result.Result) int {
	return entity.Priority(r.Kind())
}

// DedupeBySlug collapses results that share a slug. On a collision the incumbent is
// kept only when its priority is strictly better; otherwise the candidate takes the
// incumbent's position. Results without a slug are de-duplicated by ID and appended
// after the slugged ones. The input slice is not modified.
func DedupeBySlug(results []result.Result, priority PriorityFunc) []result.Result {
	if priority == nil {
		priority = KindPriority
	}

	slugged := make([]result.Result, 0, len(results))
	slugPos := make(map[string]int, len(results))
	var unslugged []result.Result
	seenID := make(map[string]bool)

	for i := range results {
		r := results[i]
		slug := r.Slug()
		if slug == "" {
			if seenID[r.ID()] {
				continue
			}
			seenID[r.ID()] = true
			unslugged = append(unslugged, r)
			continue
		}

		pos, ok := slugPos[slug]
		if !ok {
			slugPos[slug] = len(slugged)
			slugged = append(slugged, r)
			continue
		}
		if priority(&slugged[pos]) < priority(&r) {
			continue
		}
		slugged[pos] = r
	}

	return append(slugged, unslugged...)
}
