package result

import (
	"time"

	"github.com/brokertools/directory/internal/domain/entity"
)

// DefaultBadgePriority is the priority of results without a badge. Lower is more prominent.
const DefaultBadgePriority = 999

// UncategorizedLabel is the category shown when a document has none.
const UncategorizedLabel = "Uncategorized"

// Fields carries the values of a search hit for New.
type Fields struct {
	ID            string
	Slug          string
	RawType       string
	Kind          entity.Kind
	Type          entity.Type
	Title         string
	Name          string
	Description   string
	Tagline       string
	Category      string
	Categories    []string
	BadgePriority *int
	FeaturedLabel string
	LogoURL       string
	HeroImageURL  string
	ListingType   string
	BrokerTypes   []string
	WebsiteURL    string
	UpdatedAt     time.Time
}

// Result is a single search hit, normalized to the canonical entity shape.
type Result struct {
	f Fields
}

// New creates a search result. An empty category becomes UncategorizedLabel.
func New(f Fields) Result {
	if f.Category == "" {
		f.Category = UncategorizedLabel
	}
	if f.BadgePriority != nil {
		p := *f.BadgePriority
		f.BadgePriority = &p
	}
	return Result{f: f}
}

// ID returns the raw document identifier.
func (r *Result) ID() string { return r.f.ID }

// Slug returns the globally unique slug, empty when the document has none.
func (r *Result) Slug() string { return r.f.Slug }

// RawType returns the raw document type discriminator.
func (r *Result) RawType() string { return r.f.RawType }

// Kind returns the schema shape the document was stored under.
func (r *Result) Kind() entity.Kind { return r.f.Kind }

// Type returns the canonical result type.
func (r *Result) Type() entity.Type { return r.f.Type }

// Title returns the display title.
func (r *Result) Title() string { return r.f.Title }

// Name returns the optional secondary name.
func (r *Result) Name() string { return r.f.Name }

// DisplayTitle returns the title, falling back to the name.
func (r *Result) DisplayTitle() string {
	if r.f.Title != "" {
		return r.f.Title
	}
	return r.f.Name
}

func (r *Result) Description() string  { return r.f.Description }
func (r *Result) Tagline() string      { return r.f.Tagline }
func (r *Result) Category() string     { return r.f.Category }
func (r *Result) Categories() []string { return r.f.Categories }

// BadgePriority returns the badge priority, nil when the result has no badge.
func (r *Result) BadgePriority() *int { return r.f.BadgePriority }

// BadgePriorityOrDefault returns the badge priority or DefaultBadgePriority.
func (r *Result) BadgePriorityOrDefault() int {
	if r.f.BadgePriority == nil {
		return DefaultBadgePriority
	}
	return *r.f.BadgePriority
}

func (r *Result) FeaturedLabel() string { return r.f.FeaturedLabel }
func (r *Result) LogoURL() string       { return r.f.LogoURL }
func (r *Result) HeroImageURL() string  { return r.f.HeroImageURL }
func (r *Result) ListingType() string   { return r.f.ListingType }
func (r *Result) BrokerTypes() []string { return r.f.BrokerTypes }
func (r *Result) WebsiteURL() string    { return r.f.WebsiteURL }
func (r *Result) UpdatedAt() time.Time  { return r.f.UpdatedAt }

// TagLabels returns the labels tag refinement matches against: the categories
// array, or the primary category when the array is empty.
func (r *Result) TagLabels() []string {
	if len(r.f.Categories) > 0 {
		return r.f.Categories
	}
	return []string{r.f.Category}
}

// HasCategory reports whether any of the labels is among the result's tag labels.
func (r *Result) HasCategory(labels map[string]bool) bool {
	for _, c := range r.TagLabels() {
		if labels[c] {
			return true
		}
	}
	return false
}
