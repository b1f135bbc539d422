// Package entity normalizes the heterogeneous document shapes of the content
// repository onto one canonical listing type.
package entity

import "strings"

// Type is the canonical result type of a searchable entity.
type Type string

// Canonical types.
const (
	Software      Type = "software"
	Service       Type = "service"
	ResourceGuide Type = "resourceGuide"
	Other         Type = "other"
)

// IsValid reports whether t is one of the canonical types.
func (t Type) IsValid() bool {
	return t == Software || t == Service || t == ResourceGuide || t == Other
}

// Kind is the schema shape a document was stored under.
type Kind int

const (
	// KindDirectory is the current directoryListing shape.
	KindDirectory Kind = iota
	// KindLegacy covers the product/serviceProvider aliases.
	KindLegacy
	// KindArticle covers resource articles (blog).
	KindArticle
	// KindUnknown is any other document type.
	KindUnknown
)

// Raw _type discriminators used by the content repository.
const (
	RawDirectoryListing = "directoryListing"
	RawProduct          = "product"
	RawServiceProvider  = "serviceProvider"
	RawBlog             = "blog"
)

// resourceGuideLabel marks a listing featured as a resource guide.
const resourceGuideLabel = "resource guide"

type alias struct {
	kind Kind
	typ  Type // empty: derive from the listing type field
}

// aliases is the only place raw discriminators are mapped to canonical types.
var aliases = map[string]alias{
	RawDirectoryListing: {kind: KindDirectory},
	RawProduct:          {kind: KindLegacy, typ: Software},
	RawServiceProvider:  {kind: KindLegacy, typ: Service},
	RawBlog:             {kind: KindArticle, typ: ResourceGuide},
}

// Classify maps a raw document onto its kind and canonical type.
func Classify(rawType, listingType, featuredLabel string) (Kind, Type) {
	a, ok := aliases[rawType]
	if !ok {
		a = alias{kind: KindUnknown}
	}

	typ := a.typ
	if typ == "" {
		typ = typeFromLabel(listingType)
	}
	if strings.EqualFold(strings.TrimSpace(featuredLabel), resourceGuideLabel) {
		typ = ResourceGuide
	}
	return a.kind, typ
}

// Priority is the de-duplication order of kinds. Lower wins.
func Priority(k Kind) int {
	switch k {
	case KindDirectory:
		return 0
	case KindLegacy:
		return 1
	case KindArticle:
		return 2
	default:
		return 3
	}
}

// IsRawType reports whether s is a known raw _type discriminator.
func IsRawType(s string) bool {
	_, ok := aliases[s]
	return ok
}

// RawTypesFor lists the raw document types that can produce the canonical type t.
func RawTypesFor(t Type) []string {
	switch t {
	case Software:
		return []string{RawDirectoryListing, RawProduct}
	case Service:
		return []string{RawDirectoryListing, RawServiceProvider}
	case ResourceGuide:
		return []string{RawBlog, RawDirectoryListing}
	default:
		return nil
	}
}

func typeFromLabel(label string) Type {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "software":
		return Software
	case "service":
		return Service
	case "resourceguide", "resource-guide", "resource_guide":
		return ResourceGuide
	default:
		return Other
	}
}
