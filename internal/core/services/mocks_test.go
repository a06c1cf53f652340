package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/SscSPs/teamops_backend/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, userID, patch, now)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	args := m.Called(ctx, userID, passwordHash, now)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	args := m.Called(ctx, projectID)
	var p *domain.ProjectDetails
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.ProjectDetails)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) FindProjectAccess(ctx context.Context, projectID string) (*domain.ProjectAccess, error) {
	args := m.Called(ctx, projectID)
	var a *domain.ProjectAccess
	if args.Get(0) != nil {
		a = args.Get(0).(*domain.ProjectAccess)
	}
	return a, args.Error(1)
}

func (m *MockProjectRepository) FindProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectDetails, error) {
	args := m.Called(ctx, filter)
	var ps []domain.ProjectDetails
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.ProjectDetails)
	}
	return ps, args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, projectID string, patch domain.ProjectPatch, now time.Time) error {
	args := m.Called(ctx, projectID, patch, now)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectRepository) FindMembership(ctx context.Context, projectID, userID string) (*domain.EmployeeProject, error) {
	args := m.Called(ctx, projectID, userID)
	var ep *domain.EmployeeProject
	if args.Get(0) != nil {
		ep = args.Get(0).(*domain.EmployeeProject)
	}
	return ep, args.Error(1)
}

func (m *MockProjectRepository) SaveMembership(ctx context.Context, membership domain.EmployeeProject) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteMembership(ctx context.Context, projectID, userID string) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// --- Mock KpiRepository ---
type MockKpiRepository struct {
	mock.Mock
}

func (m *MockKpiRepository) FindKpiByID(ctx context.Context, kpiID string) (*domain.KpiDetails, error) {
	args := m.Called(ctx, kpiID)
	var k *domain.KpiDetails
	if args.Get(0) != nil {
		k = args.Get(0).(*domain.KpiDetails)
	}
	return k, args.Error(1)
}

func (m *MockKpiRepository) FindKpis(ctx context.Context, filter domain.KpiFilter) ([]domain.KpiDetails, error) {
	args := m.Called(ctx, filter)
	var ks []domain.KpiDetails
	if args.Get(0) != nil {
		ks = args.Get(0).([]domain.KpiDetails)
	}
	return ks, args.Error(1)
}

func (m *MockKpiRepository) SaveKpi(ctx context.Context, kpi domain.Kpi) error {
	args := m.Called(ctx, kpi)
	return args.Error(0)
}

func (m *MockKpiRepository) UpdateKpi(ctx context.Context, kpiID string, patch domain.KpiPatch, now time.Time) error {
	args := m.Called(ctx, kpiID, patch, now)
	return args.Error(0)
}

func (m *MockKpiRepository) DeleteKpi(ctx context.Context, kpiID string) error {
	args := m.Called(ctx, kpiID)
	return args.Error(0)
}

func (m *MockKpiRepository) FindKpiValueByID(ctx context.Context, valueID string) (*domain.KpiValue, error) {
	args := m.Called(ctx, valueID)
	var v *domain.KpiValue
	if args.Get(0) != nil {
		v = args.Get(0).(*domain.KpiValue)
	}
	return v, args.Error(1)
}

func (m *MockKpiRepository) FindKpiValues(ctx context.Context, kpiID string, limit int, after *pagination.Cursor) ([]domain.KpiValue, error) {
	args := m.Called(ctx, kpiID, limit, after)
	var vs []domain.KpiValue
	if args.Get(0) != nil {
		vs = args.Get(0).([]domain.KpiValue)
	}
	return vs, args.Error(1)
}

func (m *MockKpiRepository) SaveKpiValue(ctx context.Context, value domain.KpiValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockKpiRepository) UpdateKpiValue(ctx context.Context, valueID string, patch domain.KpiValuePatch, now time.Time) error {
	args := m.Called(ctx, valueID, patch, now)
	return args.Error(0)
}

func (m *MockKpiRepository) DeleteKpiValue(ctx context.Context, valueID string) error {
	args := m.Called(ctx, valueID)
	return args.Error(0)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(ctx context.Context, p domain.Principal) (string, time.Time, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) IssueRefreshToken(ctx context.Context, p domain.Principal) (string, time.Time, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Verify(ctx context.Context, token string, kind utils.TokenKind) (*domain.Principal, error) {
	args := m.Called(ctx, token, kind)
	var p *domain.Principal
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Principal)
	}
	return p, args.Error(1)
}

// plainHasher stores passwords with a fixed prefix so tests can assert on hashes without bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

var (
	adminPrincipal    = domain.Principal{UserID: "admin-1", Email: "admin@teamops.com", Role: domain.RoleAdmin}
	managerPrincipal  = domain.Principal{UserID: "manager-1", Email: "manager@teamops.com", Role: domain.RoleManager}
	employeePrincipal = domain.Principal{UserID: "employee-1", Email: "employee@teamops.com", Role: domain.RoleEmployee}
	outsiderPrincipal = domain.Principal{UserID: "employee-2", Email: "other@teamops.com", Role: domain.RoleEmployee}
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }
