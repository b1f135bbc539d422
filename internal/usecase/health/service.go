package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names.
const (
	ComponentContent = "content"
	ComponentCache   = "cache"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	content ContentPinger
	cache   CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(content ContentPinger, cache CachePinger) *Service {
	return &Service{content: content, cache: cache}
}

// Check runs health checks against all components.
// The content API is required: its failure makes the service unhealthy.
// A cache failure only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.content.Ping(ctx); err != nil {
		checks[ComponentContent] = CheckError
		status = Unhealthy
	} else {
		checks[ComponentContent] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks[ComponentCache] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[ComponentCache] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
