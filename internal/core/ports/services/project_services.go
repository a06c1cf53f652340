package services

import (
	"context"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	// ListProjects returns the projects visible to actor that match filter.
	ListProjects(ctx context.Context, actor domain.Principal, filter domain.ProjectFilter) ([]domain.ProjectDetails, error)
	// GetProjectByID returns a project the actor is involved with.
	GetProjectByID(ctx context.Context, actor domain.Principal, projectID string) (*domain.ProjectDetails, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, actor domain.Principal, req dto.CreateProjectRequest) (*domain.ProjectDetails, error)
	UpdateProject(ctx context.Context, actor domain.Principal, projectID string, req dto.UpdateProjectRequest) (*domain.ProjectDetails, error)
	DeleteProject(ctx context.Context, actor domain.Principal, projectID string) error
}

// ProjectMembershipSvc defines employee assignment operations
type ProjectMembershipSvc interface {
	AssignEmployee(ctx context.Context, actor domain.Principal, projectID string, req dto.AssignEmployeeRequest) (*domain.EmployeeProject, error)
	RemoveEmployee(ctx context.Context, actor domain.Principal, projectID, userID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	ProjectMembershipSvc
}
