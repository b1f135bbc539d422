package request

import (
	"fmt"
	"strings"

	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxTerms is the maximum number of text terms in a single search.
	MaxTerms = 16
	// MaxTermLength is the maximum length of a single term.
	MaxTermLength = 256
	// MaxContentTypes is the maximum number of content types, raw or canonical, in a single search.
	MaxContentTypes = 8
)

// DefaultContentTypes are the raw document types searched when none are given.
var DefaultContentTypes = []string{
	entity.RawDirectoryListing,
	entity.RawProduct,
	entity.RawServiceProvider,
	entity.RawBlog,
}

// Request is a validated unified search query.
type Request struct {
	terms        []string
	contentTypes []string
	resultTypes  map[entity.Type]bool
	filters      filter.Filters
}

// New validates and normalizes search parameters.
// Terms are trimmed, empty ones dropped and duplicates removed (first occurrence wins).
// Content types may be raw document types or canonical result types; canonical ones
// expand to the raw types that can produce them and restrict the result types.
// An empty content type set is valid and yields a request that matches nothing.
func New(rawTerms, contentTypes []string, filters filter.Filters) (Request, error) {
	terms := make([]string, 0, len(rawTerms))
	seen := make(map[string]bool, len(rawTerms))
	for _, t := range rawTerms {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		if len(t) > MaxTermLength {
			return Request{}, fmt.Errorf("term too long (max %d chars)", MaxTermLength)
		}
		seen[t] = true
		terms = append(terms, t)
	}
	if len(terms) > MaxTerms {
		return Request{}, fmt.Errorf("too many terms (max %d)", MaxTerms)
	}
	if len(contentTypes) > MaxContentTypes {
		return Request{}, fmt.Errorf("too many content types (max %d)", MaxContentTypes)
	}

	raw, resultTypes, err := expandContentTypes(contentTypes)
	if err != nil {
		return Request{}, err
	}

	return Request{
		terms:        terms,
		contentTypes: raw,
		resultTypes:  resultTypes,
		filters:      filters,
	}, nil
}

func expandContentTypes(contentTypes []string) ([]string, map[entity.Type]bool, error) {
	var (
		raw       []string
		seen      = make(map[string]bool)
		canonical bool
		types     = make(map[entity.Type]bool)
	)
	add := func(rt string) {
		if !seen[rt] {
			seen[rt] = true
			raw = append(raw, rt)
		}
	}

	for _, ct := range contentTypes {
		ct = strings.TrimSpace(ct)
		switch {
		case ct == "":
			continue
		case entity.IsRawType(ct):
			add(ct)
			for _, t := range impliedTypes(ct) {
				types[t] = true
			}
		case entity.Type(ct).IsValid() && entity.Type(ct) != entity.Other:
			canonical = true
			types[entity.Type(ct)] = true
			for _, rt := range entity.RawTypesFor(entity.Type(ct)) {
				add(rt)
			}
		default:
			return nil, nil, fmt.Errorf("invalid content type: %q", ct)
		}
	}

	// Raw types alone never restrict the result type.
	if !canonical {
		types = nil
	}
	return raw, types, nil
}

func impliedTypes(rawType string) []entity.Type {
	if rawType == entity.RawDirectoryListing {
		return []entity.Type{entity.Software, entity.Service, entity.ResourceGuide, entity.Other}
	}
	_, t := entity.Classify(rawType, "", "")
	return []entity.Type{t}
}

// Terms returns the normalized text terms.
func (r *Request) Terms() []string { return r.terms }

// Patterns returns the terms as prefix-wildcard match patterns.
func (r *Request) Patterns() []string {
	out := make([]string, len(r.terms))
	for i, t := range r.terms {
		out[i] = t + "*"
	}
	return out
}

// ContentTypes returns the raw document types to query.
func (r *Request) ContentTypes() []string { return r.contentTypes }

// Filters returns the optional search filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// IsEmpty reports whether the request can match no documents.
func (r *Request) IsEmpty() bool { return len(r.contentTypes) == 0 }

// AcceptsType reports whether results of type t belong in the response.
func (r *Request) AcceptsType(t entity.Type) bool {
	if r.resultTypes == nil {
		return true
	}
	return r.resultTypes[t]
}

// Params returns the query parameters for the request.
func (r *Request) Params() map[string]any {
	p := r.filters.Params()
	p["contentTypes"] = r.contentTypes
	p["searchTerms"] = r.Patterns()
	return p
}
