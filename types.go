package directory

import (
	"context"
	"encoding/json"

	"github.com/brokertools/directory/internal/content"
	domcmp "github.com/brokertools/directory/internal/domain/comparison"
	"github.com/brokertools/directory/internal/domain/entity"
	"github.com/brokertools/directory/internal/domain/search/refine"
	"github.com/brokertools/directory/internal/domain/search/result"
)

// Fetcher runs a GROQ query and returns the raw JSON result value.
// Use WithFetcher to serve queries from something other than the Sanity HTTP API.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc = content.FetcherFunc

// Search types.
type (
	// Result is one deduplicated search hit.
	Result = result.Result
	// ResultType is the canonical result type (software, service, resourceGuide, other).
	ResultType = entity.Type
	// Tab selects the result type shown by Refine.
	Tab = refine.Tab
	// RefineOptions are the tab and category tag selections.
	RefineOptions = refine.Options
	// RefineOutcome is a refined result set with per-tab counts.
	RefineOutcome = refine.Outcome
	// Counts are the per-tab result counts.
	Counts = refine.Counts
)

// Result types.
const (
	TypeSoftware      = entity.Software
	TypeService       = entity.Service
	TypeResourceGuide = entity.ResourceGuide
	TypeOther         = entity.Other
)

// Tabs.
const (
	TabAll           = refine.TabAll
	TabSoftware      = refine.TabSoftware
	TabService       = refine.TabService
	TabResourceGuide = refine.TabResourceGuide
)

// Comparison types.
type (
	// Dataset is everything the comparison page of a listing needs.
	Dataset = domcmp.Dataset
	// Product is one column of a comparison table.
	Product = domcmp.Product
	// Projection is the comparison data of one listing.
	Projection = domcmp.Projection
	// ProjectionFeature is one feature entry of a projection.
	ProjectionFeature = domcmp.ProjectionFeature
	// FeatureGroup is an ordered category of feature rows.
	FeatureGroup = domcmp.FeatureGroup
	// FeatureRow is the availability of one feature across a comparison set.
	FeatureRow = domcmp.FeatureRow
	// Availability is yes, partial or no.
	Availability = domcmp.Availability
)
