package content

import (
	"context"
	"encoding/json"
	"testing"
)

func TestOperationFromContext(t *testing.T) {
	if got := OperationFromContext(context.Background()); got != "query" {
		t.Errorf("default operation = %q", got)
	}
	ctx := WithOperation(context.Background(), "search")
	if got := OperationFromContext(ctx); got != "search" {
		t.Errorf("operation = %q, want search", got)
	}
}

func TestFetcherFunc(t *testing.T) {
	var gotQuery string
	f := FetcherFunc(func(_ context.Context, query string, _ map[string]any) (json.RawMessage, error) {
		gotQuery = query
		return json.RawMessage(`[]`), nil
	})

	raw, err := f.Fetch(context.Background(), "*[]", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "*[]" || string(raw) != "[]" {
		t.Errorf("query = %q, raw = %s", gotQuery, raw)
	}
}
