package filter

import (
	"strings"
	"testing"
)

func TestNew_AllDisablesFilter(t *testing.T) {
	f, err := New("all", " ALL ", "", "  ", "All")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsEmpty() {
		t.Errorf("expected empty filters, got %+v", f)
	}
	for k, v := range f.Params() {
		if v != nil {
			t.Errorf("param %s = %v, want nil", k, v)
		}
	}
}

func TestNew_TrimsValues(t *testing.T) {
	f, err := New(" crm ", "mortgage", "software", "lead-gen", "jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Category() != "crm" {
		t.Errorf("category = %q", f.Category())
	}
	if f.IsEmpty() {
		t.Error("filters should not be empty")
	}
	p := f.Params()
	if p["category"] != "crm" || p["brokerType"] != "mortgage" || p["listingType"] != "software" {
		t.Errorf("unexpected params: %v", p)
	}
	if p["subCategory"] != "lead-gen" || p["author"] != "jane" {
		t.Errorf("unexpected params: %v", p)
	}
}

func TestNew_InvalidListingType(t *testing.T) {
	if _, err := New("", "", "spaceship", "", ""); err == nil {
		t.Fatal("expected error for unknown listing type")
	}
}

func TestNew_ValidListingTypes(t *testing.T) {
	for _, lt := range []string{ListingSoftware, ListingService, ListingProduct, ListingResourceGuide} {
		if _, err := New("", "", lt, "", ""); err != nil {
			t.Errorf("listing type %q: unexpected error %v", lt, err)
		}
	}
}

func TestNew_ValueTooLong(t *testing.T) {
	if _, err := New(strings.Repeat("x", MaxValueLength+1), "", "", "", ""); err == nil {
		t.Fatal("expected error for long category")
	}
}
