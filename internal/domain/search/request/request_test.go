package request

import (
	"strings"
	"testing"

	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/filter"
)

func emptyFilters() filter.Filters {
	f, _ := filter.New("", "", "", "", "")
	return f
}

func TestNew_NormalizesTerms(t *testing.T) {
	r, err := New([]string{" clickup ", "", "  ", "crm", "clickup"}, DefaultContentTypes, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	terms := r.Terms()
	if len(terms) != 2 || terms[0] != "clickup" || terms[1] != "crm" {
		t.Errorf("Terms() = %v", terms)
	}
	patterns := r.Patterns()
	if patterns[0] != "clickup*" || patterns[1] != "crm*" {
		t.Errorf("Patterns() = %v", patterns)
	}
}

func TestNew_NoTerms(t *testing.T) {
	r, err := New(nil, DefaultContentTypes, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Patterns()) != 0 {
		t.Errorf("Patterns() = %v, want empty", r.Patterns())
	}
	if r.IsEmpty() {
		t.Error("request with content types should not be empty")
	}
}

func TestNew_EmptyContentTypes(t *testing.T) {
	r, err := New([]string{"x"}, nil, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsEmpty() {
		t.Error("expected empty request")
	}
}

func TestNew_CanonicalContentTypeExpands(t *testing.T) {
	r, err := New(nil, []string{"software"}, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ct := r.ContentTypes()
	if len(ct) != 2 || ct[0] != entity.RawDirectoryListing || ct[1] != entity.RawProduct {
		t.Errorf("ContentTypes() = %v", ct)
	}
	if !r.AcceptsType(entity.Software) {
		t.Error("software should be accepted")
	}
	if r.AcceptsType(entity.Service) {
		t.Error("service should be rejected")
	}
}

func TestNew_RawContentTypesAcceptAll(t *testing.T) {
	r, err := New(nil, []string{entity.RawDirectoryListing}, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, typ := range []entity.Type{entity.Software, entity.Service, entity.ResourceGuide, entity.Other} {
		if !r.AcceptsType(typ) {
			t.Errorf("%q should be accepted", typ)
		}
	}
}

func TestNew_MixedContentTypes(t *testing.T) {
	r, err := New(nil, []string{"service", entity.RawBlog}, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.AcceptsType(entity.Service) || !r.AcceptsType(entity.ResourceGuide) {
		t.Error("service and resourceGuide should be accepted")
	}
	if r.AcceptsType(entity.Software) {
		t.Error("software should be rejected")
	}
	ct := r.ContentTypes()
	if len(ct) != 3 {
		t.Errorf("ContentTypes() = %v, want 3 distinct raw types", ct)
	}
}

func TestNew_InvalidContentType(t *testing.T) {
	if _, err := New(nil, []string{"page"}, emptyFilters()); err == nil {
		t.Fatal("expected error for unknown content type")
	}
}

func TestNew_TooManyTerms(t *testing.T) {
	terms := make([]string, MaxTerms+1)
	for i := range terms {
		terms[i] = strings.Repeat("a", i+1)
	}
	if _, err := New(terms, DefaultContentTypes, emptyFilters()); err == nil {
		t.Fatal("expected error for too many terms")
	}
}

func TestNew_TooManyContentTypes(t *testing.T) {
	types := make([]string, MaxContentTypes+1)
	for i := range types {
		types[i] = entity.RawDirectoryListing
	}
	_, err := New(nil, types, emptyFilters())
	if err == nil || !strings.Contains(err.Error(), "too many content types") {
		t.Fatalf("expected too many content types error, got %v", err)
	}
	if _, err := New(nil, types[:MaxContentTypes], emptyFilters()); err != nil {
		t.Fatalf("unexpected error at the limit: %v", err)
	}
}

func TestNew_TermTooLong(t *testing.T) {
	if _, err := New([]string{strings.Repeat("a", MaxTermLength+1)}, DefaultContentTypes, emptyFilters()); err == nil {
		t.Fatal("expected error for long term")
	}
}

func TestParams(t *testing.T) {
	f, _ := filter.New("crm", "", "", "", "")
	r, err := New([]string{"click"}, []string{entity.RawProduct}, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := r.Params()
	if p["category"] != "crm" {
		t.Errorf("category = %v", p["category"])
	}
	if p["brokerType"] != nil {
		t.Errorf("brokerType = %v, want nil", p["brokerType"])
	}
	if terms, ok := p["searchTerms"].([]string); !ok || terms[0] != "click*" {
		t.Errorf("searchTerms = %v", p["searchTerms"])
	}
	if ct, ok := p["contentTypes"].([]string); !ok || ct[0] != entity.RawProduct {
		t.Errorf("contentTypes = %v", p["contentTypes"])
	}
}
