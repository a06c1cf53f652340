package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
// Authenticate resolves the fixed test tokens below without going through the mock,
// so tests only set expectations on the operation under test.
type MockAuthService struct {
	mock.Mock
}

var testPrincipals = map[string]domain.Principal{
	"admin-token":    {UserID: "admin-1", Email: "admin@teamops.com", Role: domain.RoleAdmin},
	"manager-token":  {UserID: "manager-1", Email: "manager@teamops.com", Role: domain.RoleManager},
	"employee-token": {UserID: "employee-1", Email: "employee@teamops.com", Role: domain.RoleEmployee},
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *dto.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*dto.TokenPair), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *dto.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*dto.TokenPair), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) Authenticate(_ context.Context, accessToken string) (*domain.Principal, error) {
	p, ok := testPrincipals[accessToken]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidToken, "Invalid or expired token", nil)
	}
	return &p, nil
}

func (m *MockAuthService) Profile(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, actor domain.Principal, filter domain.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, actor domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, actor domain.Principal, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, actor, userID, req).Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actor domain.Principal, userID string) error {
	return m.Called(ctx, actor, userID).Error(0)
}

func (m *MockUserService) ToggleUserStatus(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock ProjectService ---
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListProjects(ctx context.Context, actor domain.Principal, filter domain.ProjectFilter) ([]domain.ProjectDetails, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectDetails), args.Error(1)
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, actor domain.Principal, projectID string) (*domain.ProjectDetails, error) {
	args := m.Called(ctx, actor, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetails), args.Error(1)
}

func (m *MockProjectService) CreateProject(ctx context.Context, actor domain.Principal, req dto.CreateProjectRequest) (*domain.ProjectDetails, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetails), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, actor domain.Principal, projectID string, req dto.UpdateProjectRequest) (*domain.ProjectDetails, error) {
	args := m.Called(ctx, actor, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetails), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, actor domain.Principal, projectID string) error {
	return m.Called(ctx, actor, projectID).Error(0)
}

func (m *MockProjectService) AssignEmployee(ctx context.Context, actor domain.Principal, projectID string, req dto.AssignEmployeeRequest) (*domain.EmployeeProject, error) {
	args := m.Called(ctx, actor, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeProject), args.Error(1)
}

func (m *MockProjectService) RemoveEmployee(ctx context.Context, actor domain.Principal, projectID, userID string) error {
	return m.Called(ctx, actor, projectID, userID).Error(0)
}

var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Mock KpiService ---
type MockKpiService struct {
	mock.Mock
}

func (m *MockKpiService) ListKpis(ctx context.Context, actor domain.Principal, filter domain.KpiFilter) ([]domain.KpiDetails, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KpiDetails), args.Error(1)
}

func (m *MockKpiService) GetKpiByID(ctx context.Context, actor domain.Principal, kpiID string) (*domain.KpiDetails, error) {
	args := m.Called(ctx, actor, kpiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiDetails), args.Error(1)
}

func (m *MockKpiService) CreateKpi(ctx context.Context, actor domain.Principal, req dto.CreateKpiRequest) (*domain.KpiDetails, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiDetails), args.Error(1)
}

func (m *MockKpiService) UpdateKpi(ctx context.Context, actor domain.Principal, kpiID string, req dto.UpdateKpiRequest) (*domain.KpiDetails, error) {
	args := m.Called(ctx, actor, kpiID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiDetails), args.Error(1)
}

func (m *MockKpiService) DeleteKpi(ctx context.Context, actor domain.Principal, kpiID string) error {
	return m.Called(ctx, actor, kpiID).Error(0)
}

func (m *MockKpiService) ListKpiValues(ctx context.Context, actor domain.Principal, kpiID string, params dto.ListKpiValuesParams) (*domain.KpiValuePage, error) {
	args := m.Called(ctx, actor, kpiID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiValuePage), args.Error(1)
}

func (m *MockKpiService) CreateKpiValue(ctx context.Context, actor domain.Principal, kpiID string, req dto.CreateKpiValueRequest) (*domain.KpiValue, error) {
	args := m.Called(ctx, actor, kpiID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiValue), args.Error(1)
}

func (m *MockKpiService) UpdateKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string, req dto.UpdateKpiValueRequest) (*domain.KpiValue, error) {
	args := m.Called(ctx, actor, kpiID, valueID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiValue), args.Error(1)
}

func (m *MockKpiService) DeleteKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string) error {
	return m.Called(ctx, actor, kpiID, valueID).Error(0)
}

var _ portssvc.KpiSvcFacade = (*MockKpiService)(nil)

// --- Mock HealthService ---
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.HealthSvc = (*MockHealthService)(nil)
