package health

import "context"

// Status represents the aggregated service status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the embedding provider is down; cached results and
	// job state still serve.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is down; no operation can serve.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Component check names.
const (
	CheckStore    = "store"
	CheckProvider = "embedding_provider"
)

// Check is one component probe outcome.
type Check struct {
	Status CheckResult
	Error  string
}

// Report aggregates component checks into one service status.
type Report struct {
	Status Status
	Checks map[string]Check
}

// Service coordinates component health checks.
type Service struct {
	store    StorePinger
	provider ProviderChecker
}

// New creates a health service. provider may be nil when no embedding
// provider is configured.
func New(store StorePinger, provider ProviderChecker) *Service {
	return &Service{store: store, provider: provider}
}

// Check probes every component. Every operation depends on the store, so a
// store failure marks the service unhealthy; a provider failure only
// degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]Check)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks[CheckStore] = Check{Status: CheckError, Error: err.Error()}
		status = Unhealthy
	} else {
		checks[CheckStore] = Check{Status: CheckOK}
	}

	if s.provider != nil {
		if err := s.provider.HealthCheck(ctx); err != nil {
			checks[CheckProvider] = Check{Status: CheckError, Error: err.Error()}
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[CheckProvider] = Check{Status: CheckOK}
		}
	}

	return Report{Status: status, Checks: checks}
}
