package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a project with its manager, creator, members and KPI summaries.
	FindProjectByID(ctx context.Context, projectID string) (*domain.ProjectDetails, error)

	// FindProjectAccess loads only the relationship context of a project.
	FindProjectAccess(ctx context.Context, projectID string) (*domain.ProjectAccess, error)

	// FindProjects retrieves projects matching the filter and its visibility, newest first.
	FindProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectDetails, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project. An unknown manager yields apperrors.ErrInvalidReference.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject applies the set fields of patch.
	UpdateProject(ctx context.Context, projectID string, patch domain.ProjectPatch, now time.Time) error

	// DeleteProject removes a project together with its memberships.
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectMembershipManager defines operations on employee assignments
type ProjectMembershipManager interface {
	// FindMembership retrieves the assignment of userID to projectID.
	FindMembership(ctx context.Context, projectID, userID string) (*domain.EmployeeProject, error)

	// SaveMembership persists a new assignment. A duplicate yields apperrors.ErrConflict.
	SaveMembership(ctx context.Context, membership domain.EmployeeProject) error

	// DeleteMembership removes an assignment.
	DeleteMembership(ctx context.Context, projectID, userID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectMembershipManager
}
