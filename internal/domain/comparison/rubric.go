package comparison

import (
	"math"
	"sort"
)

// Round1 rounds half away from zero at one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// RubricCategoryScores averages the scored features of a projection per category.
// A category's order is the lowest order among its features. Categories are sorted
// by order, then by title.
func RubricCategoryScores(features []ProjectionFeature) []RubricCategoryScore {
	type acc struct {
		title string
		order int
		total float64
		count int
	}

	var (
		index = make(map[string]*acc)
		list  []*acc
	)
	for _, f := range features {
		if f.Score == nil {
			continue
		}
		title := categoryTitle(f.Category)
		order := categoryOrder(f.Category)

		a, ok := index[title]
		if !ok {
			a = &acc{title: title, order: order}
			index[title] = a
			list = append(list, a)
		}
		a.total += *f.Score
		a.count++
		a.order = min(a.order, order)
	}

	out := make([]RubricCategoryScore, 0, len(list))
	for _, a := range list {
		out = append(out, RubricCategoryScore{
			Title: a.title,
			Order: a.order,
			Score: Round1(a.total / float64(a.count)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// OverallRubricScore is the rounded mean of the category scores, nil when there are none.
func OverallRubricScore(scores []RubricCategoryScore) *float64 {
	if len(scores) == 0 {
		return nil
	}
	var total float64
	for _, s := range scores {
		total += s.Score
	}
	v := Round1(total / float64(len(scores)))
	return &v
}
