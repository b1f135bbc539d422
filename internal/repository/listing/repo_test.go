package listing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/brokertools/directory/internal/content"
	"github.com/brokertools/directory/internal/domain"
	"github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/entity"
)

const searchFixture = `[
	{
		"_id": "d1", "_type": "directoryListing", "_updatedAt": "2026-03-01T10:00:00Z",
		"title": "ClickUp", "slug": "clickup", "category": "CRM",
		"categories": ["CRM", "Productivity"], "listingType": "software",
		"badgePriority": 2, "logoUrl": "https://cdn/clickup.png",
		"brokerType": "mortgage", "websiteURL": "https://clickup.com"
	},
	{
		"_id": "p1", "_type": "product", "name": "Legacy CRM", "slug": "legacy-crm",
		"logo_url": "https://cdn/legacy.png", "brokerType": ["mortgage", "asset-finance"],
		"websiteUrl": "https://legacy.example"
	},
	{
		"_id": "b1", "_type": "blog", "title": "Choosing a CRM", "slug": "choosing-a-crm",
		"listingType": {"value": "resourceGuide"}, "featuredLabel": "Resource Guide"
	},
	"not a document",
	{"title": "no identity"},
	null
]`

func TestSearch_DecodesHits(t *testing.T) {
	repo, mf := newTestRepo(t)
	var gotOp string
	mf.fetchFn = func(ctx context.Context, _ string, _ map[string]any) (json.RawMessage, error) {
		gotOp = content.OperationFromContext(ctx)
		return json.RawMessage(searchFixture), nil
	}

	results, err := repo.Search(context.Background(), mustRequest(t, []string{"crm"}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOp != OpSearch {
		t.Errorf("operation = %q, want %q", gotOp, OpSearch)
	}
	if mf.lastQuery != searchQuery {
		t.Error("expected the unified search query")
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	first := results[0]
	if first.Kind() != entity.KindDirectory || first.Type() != entity.Software {
		t.Errorf("first: kind %v type %q", first.Kind(), first.Type())
	}
	if first.BadgePriorityOrDefault() != 2 {
		t.Errorf("badge priority = %d, want 2", first.BadgePriorityOrDefault())
	}
	if !first.UpdatedAt().Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("updatedAt = %v", first.UpdatedAt())
	}
	if diff := cmp.Diff([]string{"mortgage"}, first.BrokerTypes()); diff != "" {
		t.Errorf("broker types (-want +got):\n%s", diff)
	}
	if first.WebsiteURL() != "https://clickup.com" {
		t.Errorf("website = %q", first.WebsiteURL())
	}

	legacy := results[1]
	if legacy.Kind() != entity.KindLegacy || legacy.Type() != entity.Software {
		t.Errorf("legacy: kind %v type %q", legacy.Kind(), legacy.Type())
	}
	if legacy.LogoURL() != "https://cdn/legacy.png" {
		t.Errorf("logo alias not applied: %q", legacy.LogoURL())
	}
	if legacy.WebsiteURL() != "https://legacy.example" {
		t.Errorf("website alias not applied: %q", legacy.WebsiteURL())
	}
	if legacy.Category() != "Uncategorized" {
		t.Errorf("category = %q", legacy.Category())
	}
	if legacy.BadgePriority() != nil {
		t.Error("expected no badge priority")
	}

	guide := results[2]
	if guide.Type() != entity.ResourceGuide || guide.ListingType() != "resourceGuide" {
		t.Errorf("guide: type %q listingType %q", guide.Type(), guide.ListingType())
	}
}

func TestSearch_Params(t *testing.T) {
	repo, mf := newTestRepo(t)

	_, err := repo.Search(context.Background(), mustRequest(t, []string{" crm ", "crm", "lead"}, []string{"software"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	terms, _ := mf.lastParams["searchTerms"].([]string)
	if diff := cmp.Diff([]string{"crm*", "lead*"}, terms); diff != "" {
		t.Errorf("searchTerms (-want +got):\n%s", diff)
	}
	types, _ := mf.lastParams["contentTypes"].([]string)
	if diff := cmp.Diff([]string{entity.RawDirectoryListing, entity.RawProduct}, types); diff != "" {
		t.Errorf("contentTypes (-want +got):\n%s", diff)
	}
	for _, name := range []string{"category", "brokerType", "listingType", "subCategory", "author"} {
		v, ok := mf.lastParams[name]
		if !ok || v != nil {
			t.Errorf("param %s = %v (present %v), want null", name, v, ok)
		}
	}
}

func TestSearch_FetchError(t *testing.T) {
	repo, mf := newTestRepo(t)
	cause := errors.New("connection refused")
	mf.fetchFn = func(context.Context, string, map[string]any) (json.RawMessage, error) {
		return nil, cause
	}

	_, err := repo.Search(context.Background(), mustRequest(t, nil, nil))
	if !errors.Is(err, domain.ErrRepository) || !errors.Is(err, cause) {
		t.Fatalf("expected repository error wrapping cause, got %v", err)
	}
	var repoErr *domain.RepositoryError
	if !errors.As(err, &repoErr) || repoErr.Op != OpSearch {
		t.Errorf("expected op %q, got %v", OpSearch, err)
	}
}

func TestSearch_NonArrayResult(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(`{"unexpected": true}`)

	_, err := repo.Search(context.Background(), mustRequest(t, nil, nil))
	if !errors.Is(err, domain.ErrMalformedProjection) {
		t.Fatalf("expected ErrMalformedProjection, got %v", err)
	}
}

func TestSearch_NullResultIsEmpty(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(`null`)

	results, err := repo.Search(context.Background(), mustRequest(t, nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

const listingFixture = `{
	"_id": "d1", "_type": "directoryListing", "slug": "clickup", "title": "ClickUp",
	"tagline": "All-in-one", "listingType": "software",
	"category": {"title": "CRM", "slug": "crm"},
	"logo_url": "https://cdn/clickup.png", "websiteUrl": "https://clickup.com",
	"brokerType": ["mortgage"],
	"badges": [{"title": "Top pick", "color": "green", "priority": 1}, null],
	"serviceAreas": [{"title": "NSW", "group": "AU"}, "VIC", null],
	"features": [{"availability": "yes", "feature": {"title": "Pipelines"}}, {"availability": "no"}],
	"pricing": {"type": "subscription", "min": 12, "max": 40},
	"worksWith": [{"title": "Xero", "slug": "xero"}],
	"author": {"name": "Sam"},
	"editorNotes": "Solid choice",
	"trust_metrics": {"response_time_hours": 4},
	"verified_ratio": 0.9,
	"reviewRecencyDays": 30,
	"similarTo": [
		{"priority": 2, "listing": {"title": "HubSpot", "slug": "hubspot"}},
		{"listing": {"title": "Monday", "slug": "monday"}},
		{"priority": 1, "listing": null}
	],
	"serviceProviders": [
		{"_id": "sp1", "name": "Acme Advisors", "slug": "acme", "rating": {"average": 4.5, "reviewCount": 12},
		 "brokerType": "mortgage", "categories": ["Sydney"], "badges": [{"title": "Verified"}]},
		"broken"
	]
}`

func TestListingBySlug(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(listingFixture)

	f, err := repo.ListingBySlug(context.Background(), "clickup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mf.lastParams[paramSlug] != "clickup" {
		t.Errorf("slug param = %v", mf.lastParams[paramSlug])
	}

	if f.Title != "ClickUp" || f.Category != "CRM" || f.ListingType != "software" {
		t.Errorf("unexpected header: %+v", f)
	}
	if f.LogoURL != "https://cdn/clickup.png" || f.WebsiteURL != "https://clickup.com" {
		t.Errorf("aliases not applied: logo %q website %q", f.LogoURL, f.WebsiteURL)
	}
	if diff := cmp.Diff([]string{"NSW", "VIC"}, f.ServiceAreas); diff != "" {
		t.Errorf("service areas (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pipelines"}, f.FeatureTitles); diff != "" {
		t.Errorf("feature titles (-want +got):\n%s", diff)
	}
	if f.Pricing == nil || f.Pricing.Type != "subscription" || f.Pricing.Min == nil || *f.Pricing.Min != 12 {
		t.Errorf("unexpected pricing: %+v", f.Pricing)
	}
	if f.AuthorName != "Sam" || f.EditorNotes != "Solid choice" {
		t.Errorf("unexpected editor: %q %q", f.AuthorName, f.EditorNotes)
	}

	tm := f.TrustMetrics
	if tm.ResponseTimeHours == nil || *tm.ResponseTimeHours != 4 {
		t.Errorf("responseTimeHours = %v", tm.ResponseTimeHours)
	}
	if tm.VerifiedRatio == nil || *tm.VerifiedRatio != 0.9 {
		t.Errorf("verifiedRatio = %v", tm.VerifiedRatio)
	}
	if tm.ReviewRecencyDays == nil || *tm.ReviewRecencyDays != 30 {
		t.Errorf("reviewRecencyDays = %v", tm.ReviewRecencyDays)
	}

	if len(f.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(f.Alternatives))
	}
	if f.Alternatives[0].Slug != "hubspot" || *f.Alternatives[0].Priority != 2 {
		t.Errorf("unexpected alternative: %+v", f.Alternatives[0])
	}
	if f.Alternatives[1].Priority != nil {
		t.Error("missing priority must stay nil")
	}
	if f.Alternatives[2].Slug != "" {
		t.Error("alternative without listing must have empty slug")
	}

	if len(f.Providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(f.Providers))
	}
	p := f.Providers[0]
	if p.ID != "sp1" || p.Name != "Acme Advisors" {
		t.Errorf("unexpected provider: %+v", p)
	}
	if p.Rating == nil || *p.Rating.Average != 4.5 || *p.Rating.Count != 12 {
		t.Errorf("unexpected provider rating: %+v", p.Rating)
	}
	if diff := cmp.Diff([]string{"mortgage"}, p.BrokerTypes); diff != "" {
		t.Errorf("provider broker types (-want +got):\n%s", diff)
	}
}

func TestListingBySlug_NotFound(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(`null`)

	_, err := repo.ListingBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrRepository) {
		t.Error("not found must not be a repository error")
	}
}

func TestListingBySlug_Malformed(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(`"just a string"`)

	_, err := repo.ListingBySlug(context.Background(), "clickup")
	if !errors.Is(err, domain.ErrMalformedProjection) || !errors.Is(err, domain.ErrRepository) {
		t.Fatalf("expected malformed repository error, got %v", err)
	}
}

func TestComparisonMatrix(t *testing.T) {
	repo, mf := newTestRepo(t)
	mf.fetchFn = respond(`[
		{
			"slug": "clickup", "title": "ClickUp", "logoUrl": "https://cdn/c.png",
			"pricing": {"type": "subscription", "startingFrom": 7},
			"rating": {"average": 4.2, "count": 3},
			"websiteURL": "https://clickup.com",
			"worksWith": [{"title": "Xero", "slug": "xero"}],
			"serviceAreas": ["NSW", null],
			"alternativesCount": 4,
			"features": [
				{"availability": "yes", "score": 4, "feature": {"title": "Pipelines", "category": {"title": "Sales", "order": 0}}},
				{"availability": "partial", "feature": {"title": "Reports", "category": null}}
			]
		},
		{"slug": "hubspot", "title": "HubSpot", "rating": 4.8, "pricing": "call us"},
		{"title": "No slug"}
	]`)

	projections, err := repo.ComparisonMatrix(context.Background(), []string{"clickup", "hubspot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slugs, _ := mf.lastParams[paramSlugs].([]string)
	if diff := cmp.Diff([]string{"clickup", "hubspot"}, slugs); diff != "" {
		t.Errorf("slugs param (-want +got):\n%s", diff)
	}
	if len(projections) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(projections))
	}

	c := projections[0]
	if c.AlternativesCount == nil || *c.AlternativesCount != 4 {
		t.Errorf("alternativesCount = %v", c.AlternativesCount)
	}
	if c.Rating == nil || *c.Rating.Average != 4.2 || *c.Rating.Count != 3 {
		t.Errorf("unexpected rating: %+v", c.Rating)
	}
	if diff := cmp.Diff([]string{"NSW"}, c.ServiceAreas); diff != "" {
		t.Errorf("service areas (-want +got):\n%s", diff)
	}
	if len(c.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(c.Features))
	}
	if c.Features[0].Category.Order == nil || *c.Features[0].Category.Order != 0 {
		t.Errorf("stored order 0 must be kept: %v", c.Features[0].Category.Order)
	}
	if c.Features[0].Score == nil || *c.Features[0].Score != 4 {
		t.Errorf("score = %v", c.Features[0].Score)
	}
	if c.Features[1].Category != (comparison.FeatureCategory{}) || c.Features[1].Score != nil {
		t.Errorf("unexpected second feature: %+v", c.Features[1])
	}

	h := projections[1]
	if h.Pricing != nil {
		t.Errorf("non-object pricing must decode as nil, got %+v", h.Pricing)
	}
	if h.Rating == nil || h.Rating.Bare == nil || *h.Rating.Bare != 4.8 || h.Rating.Count != nil {
		t.Errorf("unexpected bare rating: %+v", h.Rating)
	}
}

func TestComparisonMatrix_NoSlugs(t *testing.T) {
	repo, mf := newTestRepo(t)

	projections, err := repo.ComparisonMatrix(context.Background(), nil)
	if err != nil || projections != nil {
		t.Fatalf("expected nil, nil; got %v, %v", projections, err)
	}
	if mf.calls != 0 {
		t.Errorf("expected no fetch, got %d", mf.calls)
	}
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "search",
			query: searchQuery,
			want: []string{
				"*[(_type in $contentTypes) && ($category == null || (category->slug.current == $category",
				`$brokerType in brokerTypes`,
				`(_type == "product" || listingType == "software"`,
				"count($searchTerms) == 0",
				"^.synonyms[] match @",
				"| order(defined(tags) desc, defined(brokerType) desc, _updatedAt desc)",
				`"badgePriority": math::min(badges[]->priority)`,
			},
		},
		{
			name:  "listing by slug",
			query: listingBySlugQuery,
			want:  []string{`(_type == "directoryListing") && (slug.current == $slug)][0] {...,`, `"similarTo": similarTo[]`},
		},
		{
			name:  "comparison",
			query: comparisonQuery,
			want:  []string{"(slug.current in $slugs)", `"alternativesCount": count(similarTo)`, "score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				if !strings.Contains(tt.query, w) {
					t.Errorf("query missing %q:\n%s", w, tt.query)
				}
			}
		})
	}
}
