package services

import "context"

// HealthSvc reports readiness of the service's dependencies.
type HealthSvc interface {
	Check(ctx context.Context) error
}
