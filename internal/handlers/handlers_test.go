package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/handlers"
	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router   *gin.Engine
	auth     *MockAuthService
	users    *MockUserService
	projects *MockProjectService
	kpis     *MockKpiService
	health   *MockHealthService
	cfg      *config.Config
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.auth = new(MockAuthService)
	s.users = new(MockUserService)
	s.projects = new(MockProjectService)
	s.kpis = new(MockKpiService)
	s.health = new(MockHealthService)
	s.cfg = &config.Config{
		RefreshTokenCookieName: "refreshToken",
		RefreshTokenCookiePath: "/api/auth",
		IsProduction:           true,
	}
	s.router = s.newRouter(handlers.RouteDeps{})
}

func (s *HandlersTestSuite) newRouter(deps handlers.RouteDeps) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	if deps.Registry != nil {
		r.Use(middleware.PrometheusMiddleware(middleware.NewMetrics(deps.Registry)))
	}
	handlers.RegisterRoutes(r, s.cfg, &portssvc.ServiceContainer{
		Auth:    s.auth,
		User:    s.users,
		Project: s.projects,
		Kpi:     s.kpis,
		Health:  s.health,
	}, deps)
	return r
}

func (s *HandlersTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.projects.AssertExpectations(s.T())
	s.kpis.AssertExpectations(s.T())
	s.health.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) do(method, path, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return serve(s.router, method, path, token, body, cookies...)
}

func serve(r *gin.Engine, method, path, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool                   `json:"success"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]any         `json:"data"`
	Details []apperrors.FieldError `json:"details"`
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "refreshToken" {
			return c
		}
	}
	return nil
}

var (
	testAdmin    = testPrincipals["admin-token"]
	testManager  = testPrincipals["manager-token"]
	testEmployee = testPrincipals["employee-token"]
)

func sampleUser() *domain.User {
	return &domain.User{UserID: "admin-1", Email: "admin@teamops.com", FirstName: "Admin", LastName: "User", Role: domain.RoleAdmin, IsActive: true}
}

func samplePair() *dto.TokenPair {
	now := time.Now()
	return &dto.TokenPair{
		AccessToken:           "access-abc",
		AccessTokenExpiresAt:  now.Add(15 * time.Minute),
		RefreshToken:          "refresh-abc",
		RefreshTokenExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

// --- Health ---

func (s *HandlersTestSuite) TestHealth() {
	s.health.On("Check", mock.Anything).Return(nil).Once()
	w := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	env := s.decode(w)
	s.True(env.Success)
	s.Equal("connected", env.Data["database"])

	s.health.On("Check", mock.Anything).Return(errors.New("connection refused")).Once()
	w = s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Equal(dto.CodeUnavailable, s.decode(w).Code)
}

// --- Auth ---

func (s *HandlersTestSuite) TestLogin_SetsRefreshCookie() {
	req := dto.LoginRequest{Email: "admin@teamops.com", Password: "Admin123!"}
	s.auth.On("Login", mock.Anything, req).Return(sampleUser(), samplePair(), nil).Once()

	w := s.do(http.MethodPost, "/api/auth/login", "", req)
	s.Equal(http.StatusOK, w.Code)
	env := s.decode(w)
	s.Equal("Login successful", env.Message)
	s.Equal("access-abc", env.Data["accessToken"])
	s.NotContains(w.Body.String(), "refresh-abc")

	cookie := refreshCookie(w)
	s.Require().NotNil(cookie)
	s.Equal("refresh-abc", cookie.Value)
	s.True(cookie.HttpOnly)
	s.True(cookie.Secure)
	s.Equal("/api/auth", cookie.Path)
	s.Equal(http.SameSiteStrictMode, cookie.SameSite)
}

func (s *HandlersTestSuite) TestLogin_InvalidCredentials() {
	s.auth.On("Login", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NewUnauthorizedError("Invalid email or password")).Once()

	w := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@teamops.com", Password: "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	env := s.decode(w)
	s.False(env.Success)
	s.Equal(dto.CodeUnauthorized, env.Code)
	s.Equal("Invalid email or password", env.Message)
	s.Nil(refreshCookie(w))
}

func (s *HandlersTestSuite) TestLogin_ValidationDetailsUseJSONNames() {
	w := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"not-an-email"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	env := s.decode(w)
	s.Equal(dto.CodeValidation, env.Code)

	fields := make([]string, 0, len(env.Details))
	for _, d := range env.Details {
		fields = append(fields, d.Field)
	}
	s.ElementsMatch([]string{"email", "password"}, fields)
}

func (s *HandlersTestSuite) TestLogin_MalformedJSON() {
	w := s.do(http.MethodPost, "/api/auth/login", "", `{"email":`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(dto.CodeValidation, s.decode(w).Code)
}

func (s *HandlersTestSuite) TestLogin_RateLimited() {
	lim, err := middleware.NewLimiter("2-M", "test_login", nil)
	s.Require().NoError(err)
	router := s.newRouter(handlers.RouteDeps{LoginLimiter: lim})

	s.auth.On("Login", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NewUnauthorizedError("Invalid email or password")).Twice()

	body := dto.LoginRequest{Email: "admin@teamops.com", Password: "wrong"}
	s.Equal(http.StatusUnauthorized, serve(router, http.MethodPost, "/api/auth/login", "", body).Code)
	s.Equal(http.StatusUnauthorized, serve(router, http.MethodPost, "/api/auth/login", "", body).Code)

	w := serve(router, http.MethodPost, "/api/auth/login", "", body)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal(dto.CodeRateLimited, s.decode(w).Code)
	s.Equal("0", w.Header().Get("X-RateLimit-Remaining"))
}

func (s *HandlersTestSuite) TestRegister_Created() {
	req := dto.RegisterRequest{Email: "new@teamops.com", Password: "Password1!", FirstName: "New", LastName: "Person"}
	user := &domain.User{UserID: "new-1", Email: req.Email, FirstName: "New", LastName: "Person", Role: domain.RoleEmployee, IsActive: true}
	s.auth.On("Register", mock.Anything, req).Return(user, samplePair(), nil).Once()

	w := s.do(http.MethodPost, "/api/auth/register", "", req)
	s.Equal(http.StatusCreated, w.Code)
	env := s.decode(w)
	s.Equal("EMPLOYEE", env.Data["user"].(map[string]any)["role"])
	s.NotNil(refreshCookie(w))
}

func (s *HandlersTestSuite) TestRegister_DuplicateEmail() {
	s.auth.On("Register", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NewConflictError("User with this email already exists")).Once()

	w := s.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "admin@teamops.com", Password: "Password1!", FirstName: "A", LastName: "B",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("User with this email already exists", s.decode(w).Message)
}

func (s *HandlersTestSuite) TestRefresh_FromCookieAndBody() {
	expires := time.Now().Add(15 * time.Minute).UTC()
	s.auth.On("Refresh", mock.Anything, "cookie-token").Return("new-access", expires, nil).Once()
	s.auth.On("Refresh", mock.Anything, "body-token").Return("newer-access", expires, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/refresh", "", nil, &http.Cookie{Name: "refreshToken", Value: "cookie-token"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("new-access", s.decode(w).Data["accessToken"])

	w = s.do(http.MethodPost, "/api/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: "body-token"},
		&http.Cookie{Name: "refreshToken", Value: "cookie-token"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("newer-access", s.decode(w).Data["accessToken"])
}

func (s *HandlersTestSuite) TestRefresh_Rejected() {
	w := s.do(http.MethodPost, "/api/auth/refresh", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	s.auth.On("Refresh", mock.Anything, "access-token-used-as-refresh").
		Return("", time.Time{}, apperrors.NewAppError(apperrors.ErrInvalidToken, "Invalid refresh token", nil)).Once()
	w = s.do(http.MethodPost, "/api/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: "access-token-used-as-refresh"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid refresh token", s.decode(w).Message)
}

func (s *HandlersTestSuite) TestLogout_ClearsCookie() {
	w := s.do(http.MethodPost, "/api/auth/logout", "", nil)
	s.Equal(http.StatusOK, w.Code)
	cookie := refreshCookie(w)
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Less(cookie.MaxAge, 0)
}

func (s *HandlersTestSuite) TestMe() {
	w := s.do(http.MethodGet, "/api/auth/me", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Access token required", s.decode(w).Message)

	w = s.do(http.MethodGet, "/api/auth/me", "forged", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid or expired token", s.decode(w).Message)

	s.auth.On("Profile", mock.Anything, testAdmin).Return(sampleUser(), nil).Once()
	w = s.do(http.MethodGet, "/api/auth/me", "admin-token", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("admin@teamops.com", s.decode(w).Data["user"].(map[string]any)["email"])
}

// --- Users ---

func (s *HandlersTestSuite) TestListUsers_PassesFilter() {
	s.users.On("ListUsers", mock.Anything, testAdmin, mock.MatchedBy(func(f domain.UserFilter) bool {
		return f.Role != nil && *f.Role == domain.RoleManager && f.IsActive != nil && *f.IsActive && f.Search == "jo" && f.Limit == 100
	})).Return([]domain.User{*sampleUser()}, nil).Once()

	w := s.do(http.MethodGet, "/api/users?role=MANAGER&isActive=true&search=jo", "admin-token", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w).Data["users"], 1)
	s.NotContains(w.Body.String(), "passwordHash")
}

func (s *HandlersTestSuite) TestListUsers_Forbidden() {
	s.users.On("ListUsers", mock.Anything, testEmployee, mock.Anything).
		Return(nil, apperrors.NewForbiddenError("Insufficient permissions")).Once()

	w := s.do(http.MethodGet, "/api/users", "employee-token", nil)
	s.Equal(http.StatusForbidden, w.Code)
	env := s.decode(w)
	s.Equal(dto.CodeForbidden, env.Code)
	s.Equal("Insufficient permissions", env.Message)
}

func (s *HandlersTestSuite) TestListUsers_InvalidRole() {
	w := s.do(http.MethodGet, "/api/users?role=OWNER", "admin-token", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	env := s.decode(w)
	s.Require().Len(env.Details, 1)
	s.Equal("role", env.Details[0].Field)
}

func (s *HandlersTestSuite) TestUserLifecycleRoutes() {
	s.users.On("ChangePassword", mock.Anything, testEmployee, "employee-1", dto.ChangePasswordRequest{
		CurrentPassword: "Employee123!", NewPassword: "Employee456!",
	}).Return(nil).Once()
	w := s.do(http.MethodPut, "/api/users/employee-1/password", "employee-token", dto.ChangePasswordRequest{
		CurrentPassword: "Employee123!", NewPassword: "Employee456!",
	})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Password updated successfully", s.decode(w).Message)

	toggled := &domain.User{UserID: "employee-1", Role: domain.RoleEmployee, IsActive: false}
	s.users.On("ToggleUserStatus", mock.Anything, testAdmin, "employee-1").Return(toggled, nil).Once()
	w = s.do(http.MethodPatch, "/api/users/employee-1/toggle-status", "admin-token", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(false, s.decode(w).Data["user"].(map[string]any)["isActive"])

	s.users.On("DeleteUser", mock.Anything, testAdmin, "missing").Return(apperrors.NewNotFoundError("User not found")).Once()
	w = s.do(http.MethodDelete, "/api/users/missing", "admin-token", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("User not found", s.decode(w).Message)
}

// --- Projects ---

func sampleProject() *domain.ProjectDetails {
	return &domain.ProjectDetails{
		Project: domain.Project{
			ProjectID: "project-1",
			Name:      "Website Redesign",
			Status:    domain.ProjectInProgress,
			Budget:    decimal.NewNullDecimal(decimal.NewFromInt(50000)),
			ManagerID: "manager-1",
			CreatorID: "admin-1",
		},
		Manager:     domain.UserSummary{UserID: "manager-1", FirstName: "John", LastName: "Manager"},
		Members:     []domain.EmployeeProject{{UserID: "employee-1", ProjectID: "project-1"}},
		MemberCount: 1,
	}
}

func (s *HandlersTestSuite) TestCreateProject_Created() {
	s.projects.On("CreateProject", mock.Anything, testManager, mock.MatchedBy(func(r dto.CreateProjectRequest) bool {
		return r.Name == "Website Redesign" && r.ManagerID == "manager-1" && r.Budget != nil && r.Budget.Equal(decimal.NewFromInt(50000))
	})).Return(sampleProject(), nil).Once()

	w := s.do(http.MethodPost, "/api/projects", "manager-token", `{"name":"Website Redesign","managerId":"manager-1","budget":50000}`)
	s.Equal(http.StatusCreated, w.Code)
	project := s.decode(w).Data["project"].(map[string]any)
	s.Equal("project-1", project["id"])
	s.Equal(float64(1), project["_count"].(map[string]any)["employees"])
	s.Len(project["employees"], 1)
}

func (s *HandlersTestSuite) TestCreateProject_Errors() {
	s.projects.On("CreateProject", mock.Anything, testEmployee, mock.Anything).
		Return(nil, apperrors.NewForbiddenError("Insufficient permissions")).Once()
	w := s.do(http.MethodPost, "/api/projects", "employee-token", dto.CreateProjectRequest{Name: "X", ManagerID: "manager-1"})
	s.Equal(http.StatusForbidden, w.Code)

	s.projects.On("CreateProject", mock.Anything, testAdmin, mock.Anything).
		Return(nil, apperrors.NewInvalidReferenceError("Manager not found or inactive")).Once()
	w = s.do(http.MethodPost, "/api/projects", "admin-token", dto.CreateProjectRequest{Name: "X", ManagerID: "ghost"})
	s.Equal(http.StatusBadRequest, w.Code)
	env := s.decode(w)
	s.Equal(dto.CodeInvalidReference, env.Code)
	s.Equal("Manager not found or inactive", env.Message)

	w = s.do(http.MethodPost, "/api/projects", "admin-token", dto.CreateProjectRequest{Name: "X"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestGetProject_NotFoundAndForbidden() {
	s.projects.On("GetProjectByID", mock.Anything, testEmployee, "missing").
		Return(nil, apperrors.NewNotFoundError("Project not found")).Once()
	s.projects.On("GetProjectByID", mock.Anything, testEmployee, "project-2").
		Return(nil, apperrors.NewForbiddenError("Insufficient permissions")).Once()

	w := s.do(http.MethodGet, "/api/projects/missing", "employee-token", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Project not found", s.decode(w).Message)

	w = s.do(http.MethodGet, "/api/projects/project-2", "employee-token", nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestListProjects_StatusFilter() {
	s.projects.On("ListProjects", mock.Anything, testManager, mock.MatchedBy(func(f domain.ProjectFilter) bool {
		return f.Status != nil && *f.Status == domain.ProjectCompleted && f.Search == ""
	})).Return([]domain.ProjectDetails{}, nil).Once()

	w := s.do(http.MethodGet, "/api/projects?status=COMPLETED", "manager-token", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.decode(w).Data["projects"])
}

func (s *HandlersTestSuite) TestAssignAndRemoveEmployee() {
	req := dto.AssignEmployeeRequest{UserID: "employee-1"}
	s.projects.On("AssignEmployee", mock.Anything, testManager, "project-1", req).
		Return(&domain.EmployeeProject{UserID: "employee-1", ProjectID: "project-1"}, nil).Once()
	s.projects.On("AssignEmployee", mock.Anything, testManager, "project-1", req).
		Return(nil, apperrors.NewConflictError("Employee is already assigned to this project")).Once()

	w := s.do(http.MethodPost, "/api/projects/project-1/assign", "manager-token", req)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("employee-1", s.decode(w).Data["assignment"].(map[string]any)["userId"])

	w = s.do(http.MethodPost, "/api/projects/project-1/assign", "manager-token", req)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(dto.CodeConflict, s.decode(w).Code)

	s.projects.On("RemoveEmployee", mock.Anything, testManager, "project-1", "employee-1").Return(nil).Once()
	w = s.do(http.MethodDelete, "/api/projects/project-1/assign/employee-1", "manager-token", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Employee removed from project successfully", s.decode(w).Message)
}

// --- KPIs ---

func (s *HandlersTestSuite) TestListKpiValues_Pagination() {
	page := &domain.KpiValuePage{
		Values: []domain.KpiValue{
			{ValueID: "v1", KpiID: "kpi-1", Value: decimal.NewFromInt(75)},
			{ValueID: "v2", KpiID: "kpi-1", Value: decimal.NewFromInt(65)},
		},
		NextToken: "next-page",
	}
	s.kpis.On("ListKpiValues", mock.Anything, testEmployee, "kpi-1", dto.ListKpiValuesParams{Limit: 2, NextToken: "abc"}).
		Return(page, nil).Once()

	w := s.do(http.MethodGet, "/api/kpis/kpi-1/values?limit=2&nextToken=abc", "employee-token", nil)
	s.Equal(http.StatusOK, w.Code)
	env := s.decode(w)
	s.Len(env.Data["values"], 2)
	s.Equal("next-page", env.Data["nextToken"])
}

func (s *HandlersTestSuite) TestListKpiValues_DefaultAndInvalidLimit() {
	s.kpis.On("ListKpiValues", mock.Anything, testEmployee, "kpi-1", dto.ListKpiValuesParams{Limit: 50}).
		Return(&domain.KpiValuePage{}, nil).Once()
	w := s.do(http.MethodGet, "/api/kpis/kpi-1/values", "employee-token", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/kpis/kpi-1/values?limit=1000", "employee-token", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestCreateKpi_ForeignProject() {
	s.kpis.On("CreateKpi", mock.Anything, testManager, mock.Anything).
		Return(nil, apperrors.NewForbiddenError("Insufficient permissions to create KPI for this project")).Once()

	w := s.do(http.MethodPost, "/api/kpis", "manager-token", `{"name":"Velocity","projectId":"project-2"}`)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Insufficient permissions to create KPI for this project", s.decode(w).Message)
}

func (s *HandlersTestSuite) TestKpiValueWrites() {
	s.kpis.On("CreateKpiValue", mock.Anything, testEmployee, "kpi-1", mock.MatchedBy(func(r dto.CreateKpiValueRequest) bool {
		return r.Value != nil && r.Value.Equal(decimal.RequireFromString("4.2"))
	})).Return(&domain.KpiValue{ValueID: "v9", KpiID: "kpi-1", UserID: "employee-1", Value: decimal.RequireFromString("4.2")}, nil).Once()
	w := s.do(http.MethodPost, "/api/kpis/kpi-1/values", "employee-token", `{"value":4.2}`)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("v9", s.decode(w).Data["kpiValue"].(map[string]any)["id"])

	w = s.do(http.MethodPost, "/api/kpis/kpi-1/values", "employee-token", `{"notes":"no value"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	s.kpis.On("UpdateKpiValue", mock.Anything, testEmployee, "kpi-1", "v1", mock.Anything).
		Return(nil, apperrors.NewForbiddenError("Insufficient permissions")).Once()
	w = s.do(http.MethodPut, "/api/kpis/kpi-1/values/v1", "employee-token", `{"notes":"edit"}`)
	s.Equal(http.StatusForbidden, w.Code)

	s.kpis.On("DeleteKpiValue", mock.Anything, testManager, "kpi-1", "gone").
		Return(apperrors.NewNotFoundError("KPI value not found")).Once()
	w = s.do(http.MethodDelete, "/api/kpis/kpi-1/values/gone", "manager-token", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestInternalErrorHidesCause() {
	s.kpis.On("DeleteKpi", mock.Anything, testAdmin, "kpi-1").Return(errors.New("pool exhausted")).Once()

	w := s.do(http.MethodDelete, "/api/kpis/kpi-1", "admin-token", nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	env := s.decode(w)
	s.Equal(dto.CodeInternal, env.Code)
	s.Equal("Failed to delete KPI", env.Message)
	s.NotContains(w.Body.String(), "pool exhausted")
}

// --- Metrics ---

func (s *HandlersTestSuite) TestMetricsEndpoint() {
	router := s.newRouter(handlers.RouteDeps{Registry: prometheus.NewRegistry()})
	s.health.On("Check", mock.Anything).Return(nil).Once()

	s.Equal(http.StatusOK, serve(router, http.MethodGet, "/api/health", "", nil).Code)

	w := serve(router, http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `teamops_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
