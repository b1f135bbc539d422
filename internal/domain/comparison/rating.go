package comparison

// Rating is a normalized rating. Average is nil unless Count is positive.
type Rating struct {
	Average *float64
	Count   int
}

// NormalizeRating resolves a raw rating. An average without supporting reviews is
// not shown, so a bare number (which carries no count) normalizes to nil.
func NormalizeRating(in *RatingInput) Rating {
	if in == nil {
		return Rating{}
	}

	avg := in.Bare
	if avg == nil {
		avg = in.Average
	}
	count := 0
	if in.Count != nil {
		count = *in.Count
	}
	if count <= 0 || avg == nil {
		return Rating{Count: count}
	}
	v := *avg
	return Rating{Average: &v, Count: count}
}
