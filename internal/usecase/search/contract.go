package search

import (
	"context"

	"github.com/brokertools/directory/internal/domain/search/request"
	"github.com/brokertools/directory/internal/domain/search/result"
)

// Repository defines the content contract for unified search.
type Repository interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}
