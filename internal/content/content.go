// Package content defines the query interface of the content repository.
package content

import (
	"context"
	"encoding/json"
)

// Fetcher runs a query against the content repository and returns the raw JSON
// value of its result. A query matching nothing returns "null" or "[]", not an error.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	return f(ctx, query, params)
}

type operationKey struct{}

// WithOperation names the repository operation a fetch belongs to (metrics and logs).
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext returns the operation name, "query" when none is set.
func OperationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return "query"
}
