package services

import (
	"context"

	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
)

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

// NewHealthService creates a readiness check backed by the repository store.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) Check(ctx context.Context) error {
	if s.checker == nil {
		return nil
	}
	if err := s.checker.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Health check failed")
		return err
	}
	return nil
}
