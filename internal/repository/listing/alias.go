package listing

import (
	"bytes"
	"encoding/json"
)

// fieldPath addresses a possibly nested document field.
type fieldPath []string

// Field alias tables: the same logical value is stored under different spellings
// depending on the schema generation of a document. The first present, non-null
// path wins.
var (
	logoURLAliases    = []fieldPath{{"logoUrl"}, {"logo_url"}}
	websiteURLAliases = []fieldPath{{"websiteURL"}, {"websiteUrl"}}
	nameAliases       = []fieldPath{{"title"}, {"name"}}
	idAliases         = []fieldPath{{"_id"}, {"id"}}
	brokerTypeAliases = []fieldPath{{"brokerType"}, {"brokerTypes"}}

	ratingCountAliases = []fieldPath{{"count"}, {"reviewCount"}}

	responseTimeHoursAliases = []fieldPath{
		{"trustMetrics", "responseTimeHours"},
		{"trust_metrics", "response_time_hours"},
		{"response_time_hours"},
		{"responseTimeHours"},
	}
	verifiedRatioAliases = []fieldPath{
		{"trustMetrics", "verifiedRatio"},
		{"trust_metrics", "verified_ratio"},
		{"verified_ratio"},
		{"verifiedRatio"},
	}
	reviewRecencyDaysAliases = []fieldPath{
		{"trustMetrics", "reviewRecencyDays"},
		{"trust_metrics", "review_recency_days"},
		{"review_recency_days"},
		{"reviewRecencyDays"},
	}
)

// document is a raw content document keyed by field name.
type document map[string]json.RawMessage

// parseDocument decodes a JSON object. Any other JSON value is an error.
func parseDocument(raw []byte) (document, error) {
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return d, nil
}

func (d document) lookup(p fieldPath) (json.RawMessage, bool) {
	cur := d
	for i, key := range p {
		v, ok := cur[key]
		if !ok || isNull(v) {
			return nil, false
		}
		if i == len(p)-1 {
			return v, true
		}
		next, err := parseDocument(v)
		if err != nil {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// firstString returns the first aliased value that is a non-empty string.
func (d document) firstString(paths []fieldPath) string {
	for _, p := range paths {
		v, ok := d.lookup(p)
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the first aliased value that is a JSON number.
func (d document) firstNumber(paths []fieldPath) *float64 {
	for _, p := range paths {
		v, ok := d.lookup(p)
		if !ok {
			continue
		}
		var f float64
		if json.Unmarshal(v, &f) == nil {
			return &f
		}
	}
	return nil
}

// firstInt is firstNumber truncated to an integer.
func (d document) firstInt(paths []fieldPath) *int {
	f := d.firstNumber(paths)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// firstStrings returns the first aliased value that holds at least one string.
// A scalar string counts as a one-element list.
func (d document) firstStrings(paths []fieldPath) []string {
	for _, p := range paths {
		v, ok := d.lookup(p)
		if !ok {
			continue
		}
		var l stringList
		_ = l.UnmarshalJSON(v)
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
