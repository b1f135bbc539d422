package comparison

// DefaultEditor is credited when a listing has no author.
const DefaultEditor = "Broker Tools Editor"

// DefaultMaxProviders is the number of provider cards shown for a software listing.
const DefaultMaxProviders = 4

// Badge is a highlight label on a listing.
type Badge struct {
	Title string
	Color string
}

// Alternative is a declared "similar" listing of a focal listing.
type Alternative struct {
	Slug     string
	Title    string
	LogoURL  string
	Priority *int
}

// TrustMetrics are the editorial trust signals of a listing.
type TrustMetrics struct {
	ResponseTimeHours *float64
	VerifiedRatio     *float64
	ReviewRecencyDays *float64
}

// ProviderSource is a service provider referenced by a software listing.
type ProviderSource struct {
	ID          string
	Name        string
	Slug        string
	Description string
	LogoURL     string
	WebsiteURL  string
	Rating      *RatingInput
	ViewCount   *int
	BrokerTypes []string
	Categories  []string
	Badges      []Badge
}

// ProviderCard is a compact service provider tile.
type ProviderCard struct {
	ID          string
	Name        string
	Slug        string
	Description string
	LogoURL     string
	Rating      *float64
	ReviewCount int
	Tags        []string
	Location    string
	WebsiteURL  string
	Badges      []Badge
}

// FocalListing is the full document of the listing a comparison is built for.
type FocalListing struct {
	Slug          string
	Title         string
	Tagline       string
	Description   string
	Category      string
	ListingType   string
	WebsiteURL    string
	LogoURL       string
	Badges        []Badge
	ServiceAreas  []string
	BrokerTypes   []string
	FeatureTitles []string
	Pricing       *Pricing
	WorksWith     []Reference
	AuthorName    string
	EditorNotes   string
	TrustMetrics  TrustMetrics
	Alternatives  []Alternative
	Providers     []ProviderSource
}

// ListingPricing is the pricing summary of the listing page.
type ListingPricing struct {
	Model string
	Min   *float64
	Max   *float64
	Notes string
}

// Editor is the editorial credit of a listing.
type Editor struct {
	Author string
	Notes  string
}

// Listing is the header summary of the focal listing.
type Listing struct {
	Name         string
	Slug         string
	Tagline      string
	Description  string
	Category     string
	WebsiteURL   string
	LogoURL      string
	Badges       []Badge
	ServiceAreas []string
	BrokerTypes  []string
	Features     []string
	Pricing      ListingPricing
	WorksWith    []Reference
	Editor       Editor
	TrustMetrics TrustMetrics
}

// SummarizeListing maps the focal document onto the listing header.
func SummarizeListing(f FocalListing) Listing {
	l := Listing{
		Name:         f.Title,
		Slug:         f.Slug,
		Tagline:      f.Tagline,
		Description:  f.Description,
		Category:     f.Category,
		WebsiteURL:   f.WebsiteURL,
		LogoURL:      f.LogoURL,
		Badges:       f.Badges,
		ServiceAreas: f.ServiceAreas,
		BrokerTypes:  f.BrokerTypes,
		Features:     f.FeatureTitles,
		WorksWith:    f.WorksWith,
		Editor:       Editor{Author: f.AuthorName, Notes: f.EditorNotes},
		TrustMetrics: f.TrustMetrics,
	}
	if l.Editor.Author == "" {
		l.Editor.Author = DefaultEditor
	}
	if f.Pricing != nil {
		l.Pricing = ListingPricing{
			Model: f.Pricing.Type,
			Min:   f.Pricing.StartingFrom,
			Max:   f.Pricing.Max,
			Notes: f.Pricing.Notes,
		}
		if l.Pricing.Min == nil {
			l.Pricing.Min = f.Pricing.Min
		}
	}
	return l
}

// ProviderCards maps at most limit provider sources onto cards.
func ProviderCards(sources []ProviderSource, limit int) []ProviderCard {
	if limit >= 0 && len(sources) > limit {
		sources = sources[:limit]
	}
	out := make([]ProviderCard, 0, len(sources))
	for _, s := range sources {
		rating := NormalizeRating(s.Rating)
		card := ProviderCard{
			ID:          s.ID,
			Name:        s.Name,
			Slug:        s.Slug,
			Description: s.Description,
			LogoURL:     s.LogoURL,
			Rating:      rating.Average,
			ReviewCount: rating.Count,
			Tags:        s.BrokerTypes,
			WebsiteURL:  s.WebsiteURL,
			Badges:      s.Badges,
		}
		if s.ViewCount != nil {
			card.ReviewCount = *s.ViewCount
		}
		if len(card.Tags) == 0 {
			card.Tags = s.Categories
		}
		if len(s.Categories) > 0 {
			card.Location = s.Categories[0]
		}
		out = append(out, card)
	}
	return out
}
