package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brokertools/directory/internal/domain/search/request"
	"github.com/brokertools/directory/internal/domain/search/result"
	"github.com/brokertools/directory/internal/logger"
)

// Service resolves unified searches across all listing shapes.
type Service struct {
	repo     Repository
	priority PriorityFunc
}

// New creates a search service. Duplicates are resolved by KindPriority.
func New(repo Repository) *Service {
	return &Service{repo: repo, priority: KindPriority}
}

// Search runs the request against the repository, drops results of types the request
// does not accept and collapses duplicates by slug. Repository order is preserved.
// A request without content types returns an empty result without a repository call.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	if req.IsEmpty() {
		return []result.Result{}, nil
	}

	results, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}

	accepted := make([]result.Result, 0, len(results))
	for i := range results {
		if req.AcceptsType(results[i].Type()) {
			accepted = append(accepted, results[i])
		}
	}

	out := DedupeBySlug(accepted, s.priority)

	logger.FromContext(ctx).Debug("Search resolved",
		zap.Int("fetched", len(results)),
		zap.Int("returned", len(out)),
		zap.Int("terms", len(req.Terms())),
	)
	return out, nil
}
