package services

import (
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, hasher portssvc.PasswordHasher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Token service first since auth depends on it
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token, hasher)

	container.User = NewUserService(repos.UserRepo, hasher)
	container.Project = NewProjectService(repos.ProjectRepo, repos.UserRepo)
	container.Kpi = NewKpiService(repos.KpiRepo, repos.ProjectRepo)
	container.Health = NewHealthService(repos.Health)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ProjectSvcFacade = (*projectService)(nil)
	_ portssvc.KpiSvcFacade     = (*kpiService)(nil)
	_ portssvc.HealthSvc        = (*healthService)(nil)
)
