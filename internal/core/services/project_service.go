package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/authz"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// projectService implements ProjectSvcFacade.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewProjectService creates a new project service. userRepo resolves managers and assignees.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, userRepo: userRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) ListProjects(ctx context.Context, actor domain.Principal, filter domain.ProjectFilter) ([]domain.ProjectDetails, error) {
	filter.Visibility = authz.ProjectVisibility(actor)

	projects, err := s.projectRepo.FindProjects(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, actor domain.Principal, projectID string) (*domain.ProjectDetails, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadProject(actor, project.Access()); err != nil {
		s.LogWarn(ctx, err, "Project read denied", slog.String("project_id", projectID))
		return nil, err
	}
	return project, nil
}

func (s *projectService) CreateProject(ctx context.Context, actor domain.Principal, req dto.CreateProjectRequest) (*domain.ProjectDetails, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := authz.CanCreateProject(actor); err != nil {
		s.LogWarn(ctx, err, "Project creation denied")
		return nil, err
	}

	startDate, err := optionalDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := optionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	budget, err := positiveBudget(req.Budget)
	if err != nil {
		return nil, err
	}

	if err := s.requireActiveUser(ctx, req.ManagerID, "Manager not found or inactive"); err != nil {
		return nil, err
	}

	status := domain.ProjectPlanning
	if req.Status != nil {
		status = *req.Status
	}

	now := s.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: emptyAsNil(req.Description),
		Status:      status,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      budget,
		ManagerID:   req.ManagerID,
		CreatorID:   actor.UserID,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
		return nil, err
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID), slog.String("manager_id", project.ManagerID))
	return s.findProject(ctx, project.ProjectID)
}

func (s *projectService) UpdateProject(ctx context.Context, actor domain.Principal, projectID string, req dto.UpdateProjectRequest) (*domain.ProjectDetails, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	access, err := s.findAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUpdateProject(actor, *access); err != nil {
		s.LogWarn(ctx, err, "Project update denied", slog.String("project_id", projectID))
		return nil, err
	}

	patch, err := projectPatchFrom(req)
	if err != nil {
		return nil, err
	}

	if patch.ManagerID.Set && patch.ManagerID.Value != access.ManagerID {
		if err := s.requireActiveUser(ctx, patch.ManagerID.Value, "Manager not found or inactive"); err != nil {
			return nil, err
		}
	}

	if !patch.Empty() {
		if err := s.projectRepo.UpdateProject(ctx, projectID, patch, s.Now()); err != nil {
			s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
			return nil, err
		}
		s.LogInfo(ctx, "Project updated", slog.String("project_id", projectID))
	}

	return s.findProject(ctx, projectID)
}

func (s *projectService) DeleteProject(ctx context.Context, actor domain.Principal, projectID string) error {
	if err := authz.CanDeleteProject(actor); err != nil {
		s.LogWarn(ctx, err, "Project deletion denied", slog.String("project_id", projectID))
		return err
	}

	if _, err := s.findAccess(ctx, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}

func (s *projectService) AssignEmployee(ctx context.Context, actor domain.Principal, projectID string, req dto.AssignEmployeeRequest) (*domain.EmployeeProject, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	access, err := s.findAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageProjectMembers(actor, *access); err != nil {
		s.LogWarn(ctx, err, "Employee assignment denied", slog.String("project_id", projectID))
		return nil, err
	}

	startDate, err := optionalDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := optionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	employee, err := s.activeUser(ctx, req.UserID, "Employee not found or inactive")
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindMembership(ctx, projectID, req.UserID); err == nil {
		return nil, apperrors.NewConflictError("Employee is already assigned to this project")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing assignment", slog.String("project_id", projectID))
		return nil, err
	}

	now := s.Now()
	membership := domain.EmployeeProject{
		UserID:    req.UserID,
		ProjectID: projectID,
		Role:      emptyAsNil(req.Role),
		StartDate: now,
		EndDate:   endDate,
		CreatedAt: now,
		User:      employee.Summary(),
	}
	if startDate != nil {
		membership.StartDate = *startDate
	}

	if err := s.projectRepo.SaveMembership(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewAppError(apperrors.ErrConflict, "Employee is already assigned to this project", err)
		}
		s.LogError(ctx, err, "Failed to save assignment", slog.String("project_id", projectID), slog.String("user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Employee assigned", slog.String("project_id", projectID), slog.String("user_id", req.UserID))
	return &membership, nil
}

func (s *projectService) RemoveEmployee(ctx context.Context, actor domain.Principal, projectID, userID string) error {
	access, err := s.findAccess(ctx, projectID)
	if err != nil {
		return err
	}
	if err := authz.CanManageProjectMembers(actor, *access); err != nil {
		s.LogWarn(ctx, err, "Employee removal denied", slog.String("project_id", projectID))
		return err
	}

	if _, err := s.projectRepo.FindMembership(ctx, projectID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Employee is not assigned to this project")
		}
		s.LogError(ctx, err, "Failed to load assignment", slog.String("project_id", projectID))
		return err
	}

	if err := s.projectRepo.DeleteMembership(ctx, projectID, userID); err != nil {
		s.LogError(ctx, err, "Failed to remove assignment", slog.String("project_id", projectID), slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Employee removed", slog.String("project_id", projectID), slog.String("user_id", userID))
	return nil
}

func (s *projectService) findProject(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to load project", slog.String("project_id", projectID))
		return nil, err
	}
	return project, nil
}

func (s *projectService) findAccess(ctx context.Context, projectID string) (*domain.ProjectAccess, error) {
	access, err := s.projectRepo.FindProjectAccess(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to load project access", slog.String("project_id", projectID))
		return nil, err
	}
	return access, nil
}

func (s *projectService) requireActiveUser(ctx context.Context, userID, msg string) error {
	_, err := s.activeUser(ctx, userID, msg)
	return err
}

// activeUser resolves a referenced user. Missing or inactive users are an InvalidReference.
func (s *projectService) activeUser(ctx context.Context, userID, msg string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidReferenceError(msg)
		}
		s.LogError(ctx, err, "Failed to load referenced user", slog.String("user_id", userID))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewInvalidReferenceError(msg)
	}
	return user, nil
}

func projectPatchFrom(req dto.UpdateProjectRequest) (domain.ProjectPatch, error) {
	var patch domain.ProjectPatch
	if req.Name != nil {
		patch.Name = domain.SetTo(*req.Name)
	}
	if req.Description != nil {
		patch.Description = domain.SetTo(emptyAsNil(req.Description))
	}
	if req.Status != nil {
		patch.Status = domain.SetTo(*req.Status)
	}
	if req.StartDate != nil {
		d, err := optionalDate("startDate", req.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate = domain.SetTo(d)
	}
	if req.EndDate != nil {
		d, err := optionalDate("endDate", req.EndDate)
		if err != nil {
			return patch, err
		}
		patch.EndDate = domain.SetTo(d)
	}
	if req.Budget != nil {
		budget, err := positiveBudget(req.Budget)
		if err != nil {
			return patch, err
		}
		patch.Budget = domain.SetTo(budget)
	}
	if req.ManagerID != nil {
		patch.ManagerID = domain.SetTo(*req.ManagerID)
	}
	return patch, nil
}

// optionalDate parses an optional RFC 3339 value. Nil and empty strings mean no date.
func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := utils.ParseTimestamp(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func positiveBudget(budget *decimal.Decimal) (decimal.NullDecimal, error) {
	if budget == nil {
		return decimal.NullDecimal{}, nil
	}
	if !budget.IsPositive() {
		return decimal.NullDecimal{}, apperrors.NewValidationFailedError("Validation failed",
			apperrors.FieldError{Field: "budget", Message: "must be positive"})
	}
	return decimal.NewNullDecimal(*budget), nil
}

func emptyAsNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
