package comparison

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func feature(title, availability, category string, order *int) ProjectionFeature {
	return ProjectionFeature{
		Title:        title,
		Availability: availability,
		Category:     FeatureCategory{Title: category, Order: order},
	}
}

func matrixFixture() []Projection {
	return []Projection{
		{
			Slug: "x",
			Features: []ProjectionFeature{
				feature("Email sync", "yes", "Core", intPtr(1)),
				feature("SSO", "partial", "Security", intPtr(2)),
				{Title: "Dialer", Availability: "yes", Score: floatPtr(3), Category: FeatureCategory{Title: "Core", Order: intPtr(1)}},
			},
		},
		{
			Slug: "a",
			Features: []ProjectionFeature{
				{Title: "Dialer", Availability: "no", Score: floatPtr(4), Category: FeatureCategory{Title: "Core", Order: intPtr(1)}},
				feature("Email sync", "bogus", "Core", intPtr(1)),
				feature("Zapier", "yes", "", nil),
			},
		},
	}
}

func TestGroupFeaturesByCategory(t *testing.T) {
	groups := GroupFeaturesByCategory([]ProjectionFeature{
		feature("a", "yes", "", nil),
		feature("b", "yes", "Core", intPtr(1)),
		feature("c", "yes", "Tie", intPtr(1)),
		feature("d", "yes", "Core", intPtr(1)),
		feature("e", "yes", "Zero", intPtr(0)),
	})

	var titles []string
	for _, g := range groups {
		titles = append(titles, g.Title)
	}
	if diff := cmp.Diff([]string{"Zero", "Core", "Tie", "Other"}, titles); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}
	if len(groups[1].Features) != 2 {
		t.Errorf("Core features = %d, want 2", len(groups[1].Features))
	}
	if groups[3].Order != DefaultOrder {
		t.Errorf("Other order = %d, want %d", groups[3].Order, DefaultOrder)
	}
}

func TestBuildFeatureGroups(t *testing.T) {
	got := BuildFeatureGroups(matrixFixture(), []string{"x", "a", "b"})

	want := []FeatureGroup{
		{Title: "Core", Order: 1, Features: []FeatureRow{
			{Title: "Email sync", Availability: map[string]Availability{"x": "yes", "a": "no", "b": "no"}},
			{Title: "Dialer", Score: floatPtr(4), Availability: map[string]Availability{"x": "yes", "a": "no", "b": "no"}},
		}},
		{Title: "Security", Order: 2, Features: []FeatureRow{
			{Title: "SSO", Availability: map[string]Availability{"x": "partial", "a": "no", "b": "no"}},
		}},
		{Title: "Other", Order: 999, Features: []FeatureRow{
			{Title: "Zapier", Availability: map[string]Availability{"x": "no", "a": "yes", "b": "no"}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFeatureGroups_BackfillCompleteness(t *testing.T) {
	slugs := []string{"x", "a", "b", "c"}
	for _, g := range BuildFeatureGroups(matrixFixture(), slugs) {
		for _, r := range g.Features {
			for _, s := range slugs {
				if _, ok := r.Availability[s]; !ok {
					t.Errorf("group %q row %q missing slug %q", g.Title, r.Title, s)
				}
			}
		}
	}
}

func TestBuildFeatureGroups_Idempotent(t *testing.T) {
	in := matrixFixture()
	first := BuildFeatureGroups(in, []string{"x", "a"})
	second := BuildFeatureGroups(in, []string{"x", "a"})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestBuildFeatureGroups_SkipsUntitled(t *testing.T) {
	got := BuildFeatureGroups([]Projection{{Slug: "x", Features: []ProjectionFeature{feature("", "yes", "Core", intPtr(1))}}}, []string{"x"})
	if len(got) != 1 || len(got[0].Features) != 0 {
		t.Errorf("expected one empty group, got %+v", got)
	}
}

func TestBuildFeatureGroups_Empty(t *testing.T) {
	if got := BuildFeatureGroups(nil, []string{"x"}); len(got) != 0 {
		t.Errorf("expected no groups, got %+v", got)
	}
}

func TestBuildSummaryFeatures(t *testing.T) {
	groups := []FeatureGroup{
		{Title: "Late", Order: 5, Features: []FeatureRow{{Title: "A"}}},
		{Title: "Early", Order: 1, Features: []FeatureRow{{Title: "Zed"}, {Title: "Beta"}}},
	}

	got := BuildSummaryFeatures(groups, 2)
	var titles []string
	for _, r := range got {
		titles = append(titles, r.Title)
	}
	if diff := cmp.Diff([]string{"Beta", "Zed"}, titles); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSummaryFeatures_CopiesAvailability(t *testing.T) {
	groups := []FeatureGroup{{Title: "Core", Order: 1, Features: []FeatureRow{
		{Title: "A", Availability: map[string]Availability{"x": AvailabilityYes}},
	}}}

	got := BuildSummaryFeatures(groups, DefaultSummaryFeatures)
	got[0].Availability["x"] = AvailabilityNo
	if groups[0].Features[0].Availability["x"] != AvailabilityYes {
		t.Error("summary rows must not share availability maps with groups")
	}
}
