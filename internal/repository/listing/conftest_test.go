package listing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brokertools/directory/internal/domain/search/filter"
	"github.com/brokertools/directory/internal/domain/search/request"
)

// mockFetcher implements content.Fetcher for tests.
type mockFetcher struct {
	fetchFn func(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)

	lastQuery  string
	lastParams map[string]any
	calls      int
}

func (m *mockFetcher) Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	m.calls++
	m.lastQuery = query
	m.lastParams = params
	if m.fetchFn != nil {
		return m.fetchFn(ctx, query, params)
	}
	return json.RawMessage("[]"), nil
}

func respond(body string) func(context.Context, string, map[string]any) (json.RawMessage, error) {
	return func(context.Context, string, map[string]any) (json.RawMessage, error) {
		return json.RawMessage(body), nil
	}
}

func newTestRepo(t *testing.T) (*Repo, *mockFetcher) {
	t.Helper()
	mf := &mockFetcher{}
	return New(mf), mf
}

func mustRequest(t *testing.T, terms, types []string) *request.Request {
	t.Helper()
	f, err := filter.New("", "", "", "", "")
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	req, err := request.New(terms, types, f)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}
