// Package refine filters and sorts an already fetched search result set in memory.
package refine

import (
	"sort"
	"strings"

	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/result"
)

// Tab is a result-type tab of the search results page.
type Tab string

// Tabs.
const (
	TabAll           Tab = "all"
	TabSoftware      Tab = Tab(entity.Software)
	TabService       Tab = Tab(entity.Service)
	TabResourceGuide Tab = Tab(entity.ResourceGuide)
)

// ParseTab maps a raw tab value onto a Tab. Unknown values select TabAll.
func ParseTab(s string) Tab {
	switch t := Tab(strings.TrimSpace(s)); t {
	case TabSoftware, TabService, TabResourceGuide:
		return t
	default:
		return TabAll
	}
}

// Options selects the refinement to apply.
type Options struct {
	Tab        Tab
	Categories []string
}

// Counts is the number of results per tab.
type Counts struct {
	All           int `json:"all"`
	Software      int `json:"software"`
	Service       int `json:"service"`
	ResourceGuide int `json:"resourceGuide"`
}

func (c *Counts) add(t entity.Type) {
	c.All++
	switch t {
	case entity.Software:
		c.Software++
	case entity.Service:
		c.Service++
	case entity.ResourceGuide:
		c.ResourceGuide++
	}
}

// Outcome is the refined result set with the per-tab counts.
type Outcome struct {
	Results []result.Result
	Counts  Counts
}

// Apply filters results by category tags then by tab, and sorts them by badge priority
// and case-insensitive title. Counts reflect the category-filtered set before the tab
// filter so each tab shows what selecting it would yield. The input is not modified.
func Apply(results []result.Result, opts Options) Outcome {
	selected := make(map[string]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		if c = strings.TrimSpace(c); c != "" {
			selected[c] = true
		}
	}
	tab := ParseTab(string(opts.Tab))

	var counts Counts
	out := make([]result.Result, 0, len(results))
	for i := range results {
		r := results[i]
		if len(selected) > 0 && !r.HasCategory(selected) {
			continue
		}
		counts.add(r.Type())
		if tab != TabAll && r.Type() != entity.Type(tab) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].BadgePriorityOrDefault(), out[j].BadgePriorityOrDefault()
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(out[i].DisplayTitle()) < strings.ToLower(out[j].DisplayTitle())
	})

	return Outcome{Results: out, Counts: counts}
}

// Categories returns the distinct tag labels of results in first-seen order.
func Categories(results []result.Result) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for i := range results {
		for _, c := range results[i].TagLabels() {
			add(c)
		}
	}
	return out
}
