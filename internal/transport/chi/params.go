package chi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/brokertools/directory/internal/domain"
	"github.com/brokertools/directory/internal/domain/search/filter"
	"github.com/brokertools/directory/internal/domain/search/refine"
	"github.com/brokertools/directory/internal/domain/search/request"
)

// SearchParams are the query parameters of GET /api/v1/search.
type SearchParams struct {
	Terms       []string
	Types       []string
	Category    string
	BrokerType  string
	ListingType string
	SubCategory string
	Author      string
	Tab         string
	Tags        []string
}

// bindSearchParams reads the search parameters. Repeated parameters (terms=a&terms=b)
// are exploded form-style lists.
func bindSearchParams(r *http.Request) (SearchParams, error) {
	q := r.URL.Query()
	var p SearchParams

	lists := []struct {
		name string
		dest *[]string
	}{
		{"terms", &p.Terms},
		{"types", &p.Types},
		{"tags", &p.Tags},
	}
	for _, l := range lists {
		if err := runtime.BindQueryParameter("form", true, false, l.name, q, l.dest); err != nil {
			return SearchParams{}, fmt.Errorf("%w: parameter %q: %w", domain.ErrInvalidRequest, l.name, err)
		}
	}

	scalars := []struct {
		name string
		dest *string
	}{
		{"category", &p.Category},
		{"brokerType", &p.BrokerType},
		{"listingType", &p.ListingType},
		{"subCategory", &p.SubCategory},
		{"author", &p.Author},
		{"tab", &p.Tab},
	}
	for _, s := range scalars {
		if err := bindString(q, s.name, s.dest); err != nil {
			return SearchParams{}, err
		}
	}

	if _, ok := q["types"]; !ok {
		p.Types = append([]string(nil), request.DefaultContentTypes...)
	}
	return p, nil
}

func bindString(q url.Values, name string, dest *string) error {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return fmt.Errorf("%w: parameter %q: %w", domain.ErrInvalidRequest, name, err)
	}
	if v != nil {
		*dest = *v
	}
	return nil
}

// Request validates the parameters into a search request.
func (p SearchParams) Request() (request.Request, error) {
	f, err := filter.New(p.Category, p.BrokerType, p.ListingType, p.SubCategory, p.Author)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	req, err := request.New(p.Terms, p.Types, f)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return req, nil
}

// Refinement returns the tab and tag refinement options.
func (p SearchParams) Refinement() refine.Options {
	return refine.Options{Tab: refine.ParseTab(p.Tab), Categories: p.Tags}
}
