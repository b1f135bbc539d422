package filter

import (
	"fmt"
	"strings"
)

// All is the "no constraint" value accepted for every filter.
const All = "all"

// MaxValueLength is the maximum length of a single filter value.
const MaxValueLength = 128

// Canonical listing types accepted by the listing-type filter.
const (
	ListingSoftware      = "software"
	ListingService       = "service"
	ListingProduct       = "product"
	ListingResourceGuide = "resourceGuide"
)

var listingTypes = map[string]bool{
	ListingSoftware:      true,
	ListingService:       true,
	ListingProduct:       true,
	ListingResourceGuide: true,
}

// Filters holds the optional, AND-combined search filters. An empty value means "skip".
type Filters struct {
	category    string
	brokerType  string
	listingType string
	subCategory string
	author      string
}

// New normalizes and validates search filters.
// Values are trimmed; "" and "all" (any case) disable the filter.
func New(category, brokerType, listingType, subCategory, author string) (Filters, error) {
	f := Filters{
		category:    normalize(category),
		brokerType:  normalize(brokerType),
		listingType: normalize(listingType),
		subCategory: normalize(subCategory),
		author:      normalize(author),
	}

	for name, v := range map[string]string{
		"category":    f.category,
		"brokerType":  f.brokerType,
		"listingType": f.listingType,
		"subCategory": f.subCategory,
		"author":      f.author,
	} {
		if len(v) > MaxValueLength {
			return Filters{}, fmt.Errorf("%s filter too long (max %d chars)", name, MaxValueLength)
		}
	}

	if f.listingType != "" && !listingTypes[f.listingType] {
		return Filters{}, fmt.Errorf("invalid listing type: %q", f.listingType)
	}
	return f, nil
}

// Category returns the category slug filter.
func (f Filters) Category() string { return f.category }

// BrokerType returns the broker type filter.
func (f Filters) BrokerType() string { return f.brokerType }

// ListingType returns the canonical listing type filter.
func (f Filters) ListingType() string { return f.listingType }

// SubCategory returns the sub-category slug filter.
func (f Filters) SubCategory() string { return f.subCategory }

// Author returns the author slug or name filter.
func (f Filters) Author() string { return f.author }

// IsEmpty reports whether no filter is active.
func (f Filters) IsEmpty() bool {
	return f.category == "" && f.brokerType == "" && f.listingType == "" &&
		f.subCategory == "" && f.author == ""
}

// Params returns the query parameters for the filters. Inactive filters map to nil
// so the repository query bypasses them.
func (f Filters) Params() map[string]any {
	return map[string]any{
		"category":    nullable(f.category),
		"brokerType":  nullable(f.brokerType),
		"listingType": nullable(f.listingType),
		"subCategory": nullable(f.subCategory),
		"author":      nullable(f.author),
	}
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, All) {
		return ""
	}
	return v
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
