package listing

import (
	"encoding/json"
	"math"
)

// Lenient JSON types. A mismatched or null value decodes to the zero value instead of
// failing the whole document.

type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) != nil {
		s = ""
	}
	*t = text(s)
	return nil
}

type number struct{ v *float64 }

func (n *number) UnmarshalJSON(b []byte) error {
	n.v = nil
	if isNull(b) {
		return nil
	}
	var f float64
	if json.Unmarshal(b, &f) == nil && !math.IsNaN(f) {
		n.v = &f
	}
	return nil
}

func (n number) intPtr() *int {
	if n.v == nil {
		return nil
	}
	i := int(*n.v)
	return &i
}

// label is a string stored either as a scalar or as a reference {value, title}.
type label string

func (l *label) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*l = label(s)
		return nil
	}
	var ref struct {
		Value text `json:"value"`
		Title text `json:"title"`
	}
	*l = ""
	if json.Unmarshal(b, &ref) == nil {
		if ref.Value != "" {
			*l = label(ref.Value)
		} else {
			*l = label(ref.Title)
		}
	}
	return nil
}

// titled is a string stored either as a scalar or as an object with a title.
type titled string

func (t *titled) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*t = titled(s)
		return nil
	}
	var obj struct {
		Title text `json:"title"`
	}
	*t = ""
	if json.Unmarshal(b, &obj) == nil {
		*t = titled(obj.Title)
	}
	return nil
}

// stringList accepts a string or an array; non-string elements are skipped.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	*l = nil
	var s string
	if json.Unmarshal(b, &s) == nil {
		if s != "" {
			*l = stringList{s}
		}
		return nil
	}
	var raw []json.RawMessage
	if json.Unmarshal(b, &raw) != nil {
		return nil
	}
	out := make(stringList, 0, len(raw))
	for _, r := range raw {
		var e string
		if json.Unmarshal(r, &e) == nil && e != "" {
			out = append(out, e)
		}
	}
	*l = out
	return nil
}

// list decodes an array element by element, skipping null and malformed entries.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(b []byte) error {
	*l = nil
	var raw []json.RawMessage
	if json.Unmarshal(b, &raw) != nil {
		return nil
	}
	out := make(list[T], 0, len(raw))
	for _, r := range raw {
		if isNull(r) {
			continue
		}
		var v T
		if json.Unmarshal(r, &v) == nil {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}

// optional decodes an object, leaving ok false for null or mismatched values.
type optional[T any] struct {
	v  T
	ok bool
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	*o = optional[T]{}
	if isNull(b) {
		return nil
	}
	var v T
	if json.Unmarshal(b, &v) == nil {
		*o = optional[T]{v: v, ok: true}
	}
	return nil
}

// ratingDTO is a bare number or an {average, count|reviewCount} object.
type ratingDTO struct {
	bare    *float64
	average *float64
	count   *int
}

func (r *ratingDTO) UnmarshalJSON(b []byte) error {
	*r = ratingDTO{}
	if isNull(b) {
		return nil
	}
	var f float64
	if json.Unmarshal(b, &f) == nil {
		*r = ratingDTO{bare: &f}
		return nil
	}
	d, err := parseDocument(b)
	if err != nil {
		return nil
	}
	r.average = d.firstNumber([]fieldPath{{"average"}})
	r.count = d.firstInt(ratingCountAliases)
	return nil
}

type referenceDTO struct {
	Title text `json:"title"`
	Slug  text `json:"slug"`
}

type badgeDTO struct {
	Title    text   `json:"title"`
	Color    text   `json:"color"`
	Priority number `json:"priority"`
}

type pricingDTO struct {
	Type         text   `json:"type"`
	StartingFrom number `json:"startingFrom"`
	Min          number `json:"min"`
	Max          number `json:"max"`
	Notes        text   `json:"notes"`
}

type categoryDTO struct {
	Title text   `json:"title"`
	Slug  text   `json:"slug"`
	Order number `json:"order"`
}

type featureRefDTO struct {
	Title    text                  `json:"title"`
	Category optional[categoryDTO] `json:"category"`
}

type featureDTO struct {
	Availability   text                    `json:"availability"`
	LimitationType text                    `json:"limitationType"`
	Notes          text                    `json:"notes"`
	Score          number                  `json:"score"`
	Feature        optional[featureRefDTO] `json:"feature"`
}

// searchDTO is one hit of the unified search query.
type searchDTO struct {
	ID            text       `json:"_id"`
	Type          text       `json:"_type"`
	UpdatedAt     text       `json:"_updatedAt"`
	Title         text       `json:"title"`
	Name          text       `json:"name"`
	Description   text       `json:"description"`
	Tagline       text       `json:"tagline"`
	FeaturedLabel text       `json:"featuredLabel"`
	Slug          text       `json:"slug"`
	Category      text       `json:"category"`
	Categories    stringList `json:"categories"`
	ListingType   label      `json:"listingType"`
	BadgePriority number     `json:"badgePriority"`
	HeroImageURL  text       `json:"heroImageUrl"`
}

type alternativeDTO struct {
	Priority number                   `json:"priority"`
	Listing  optional[alternativeRef] `json:"listing"`
}

type alternativeRef struct {
	Title   text `json:"title"`
	Slug    text `json:"slug"`
	LogoURL text `json:"logoUrl"`
}

type providerDTO struct {
	Description text           `json:"description"`
	Slug        text           `json:"slug"`
	Rating      ratingDTO      `json:"rating"`
	ViewCount   number         `json:"viewCount"`
	Categories  stringList     `json:"categories"`
	Badges      list[badgeDTO] `json:"badges"`
}

type authorDTO struct {
	Name text `json:"name"`
}

// listingDTO is the focal listing document.
type listingDTO struct {
	Slug         text                  `json:"slug"`
	Title        text                  `json:"title"`
	Tagline      text                  `json:"tagline"`
	Description  text                  `json:"description"`
	ListingType  label                 `json:"listingType"`
	Category     optional[categoryDTO] `json:"category"`
	Badges       list[badgeDTO]        `json:"badges"`
	ServiceAreas list[titled]          `json:"serviceAreas"`
	Features     list[featureDTO]      `json:"features"`
	Pricing      optional[pricingDTO]  `json:"pricing"`
	WorksWith    list[referenceDTO]    `json:"worksWith"`
	Author       optional[authorDTO]   `json:"author"`
	EditorNotes  text                  `json:"editorNotes"`
	SimilarTo    list[alternativeDTO]  `json:"similarTo"`
	Providers    list[json.RawMessage] `json:"serviceProviders"`
}

// projectionDTO is one entry of the comparison matrix query.
type projectionDTO struct {
	Slug              text                 `json:"slug"`
	Title             text                 `json:"title"`
	Tagline           text                 `json:"tagline"`
	Pricing           optional[pricingDTO] `json:"pricing"`
	Rating            ratingDTO            `json:"rating"`
	WorksWith         list[referenceDTO]   `json:"worksWith"`
	ServiceAreas      list[titled]         `json:"serviceAreas"`
	AlternativesCount number               `json:"alternativesCount"`
	Features          list[featureDTO]     `json:"features"`
}
