package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/core/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type KpiServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	mockKpiRepo     *MockKpiRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.KpiSvcFacade
}

func (suite *KpiServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockKpiRepo = new(MockKpiRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewKpiService(suite.mockKpiRepo, suite.mockProjectRepo)
}

func (suite *KpiServiceTestSuite) TearDownTest() {
	suite.mockKpiRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func projectAccess() *domain.ProjectAccess {
	return &domain.ProjectAccess{
		ProjectID: "p1",
		ManagerID: managerPrincipal.UserID,
		CreatorID: adminPrincipal.UserID,
		MemberIDs: []string{employeePrincipal.UserID},
	}
}

// projectKpi is created by admin-1 in project p1.
func projectKpi() *domain.KpiDetails {
	pid := "p1"
	return &domain.KpiDetails{
		Kpi:     domain.Kpi{KpiID: "k1", Name: "Velocity", Type: domain.KpiNumeric, IsActive: true, ProjectID: &pid, CreatorID: adminPrincipal.UserID},
		Project: &domain.ProjectRef{ProjectID: pid, Name: "Apollo"},
		Access:  domain.KpiAccess{KpiID: "k1", CreatorID: adminPrincipal.UserID, Project: projectAccess()},
	}
}

// standaloneKpi is created by manager-1 without a project.
func standaloneKpi() *domain.KpiDetails {
	return &domain.KpiDetails{
		Kpi:    domain.Kpi{KpiID: "k2", Name: "NPS", Type: domain.KpiPercentage, IsActive: true, CreatorID: managerPrincipal.UserID},
		Access: domain.KpiAccess{KpiID: "k2", CreatorID: managerPrincipal.UserID},
	}
}

// --- Read Tests ---
func (suite *KpiServiceTestSuite) TestListKpis_NonAdminScoped() {
	suite.mockKpiRepo.On("FindKpis", suite.ctx, mock.MatchedBy(func(f domain.KpiFilter) bool {
		return !f.Visibility.All && f.Visibility.UserID == employeePrincipal.UserID && f.Visibility.Scope.Creator && f.ProjectID == "p1"
	})).Return([]domain.KpiDetails{*projectKpi()}, nil).Once()

	kpis, err := suite.service.ListKpis(suite.ctx, employeePrincipal, domain.KpiFilter{ProjectID: "p1"})
	suite.Require().NoError(err)
	suite.Len(kpis, 1)
}

func (suite *KpiServiceTestSuite) TestGetKpiByID() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil)
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k2").Return(standaloneKpi(), nil)

	_, err := suite.service.GetKpiByID(suite.ctx, employeePrincipal, "k1")
	suite.NoError(err, "project member can read")

	_, err = suite.service.GetKpiByID(suite.ctx, outsiderPrincipal, "k1")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.GetKpiByID(suite.ctx, employeePrincipal, "k2")
	suite.ErrorIs(err, apperrors.ErrForbidden, "standalone KPI is visible to its creator only")

	_, err = suite.service.GetKpiByID(suite.ctx, managerPrincipal, "k2")
	suite.NoError(err)
}

// --- Create Tests ---
func (suite *KpiServiceTestSuite) TestCreateKpi_EmployeeForbiddenBeforeProjectLookup() {
	_, err := suite.service.CreateKpi(suite.ctx, employeePrincipal, dto.CreateKpiRequest{Name: "X", ProjectID: strPtr("missing")})
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindProjectAccess", mock.Anything, mock.Anything)
}

func (suite *KpiServiceTestSuite) TestCreateKpi_UnknownProject() {
	suite.mockProjectRepo.On("FindProjectAccess", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateKpi(suite.ctx, managerPrincipal, dto.CreateKpiRequest{Name: "X", ProjectID: strPtr("missing")})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("Project not found", apperrors.MessageOf(err, ""))
}

func (suite *KpiServiceTestSuite) TestCreateKpi_UninvolvedManager() {
	suite.mockProjectRepo.On("FindProjectAccess", suite.ctx, "p1").Return(projectAccess(), nil).Once()

	other := domain.Principal{UserID: "manager-2", Role: domain.RoleManager}
	_, err := suite.service.CreateKpi(suite.ctx, other, dto.CreateKpiRequest{Name: "X", ProjectID: strPtr("p1")})
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal("Insufficient permissions to create KPI for this project", apperrors.MessageOf(err, ""))
}

func (suite *KpiServiceTestSuite) TestCreateKpi_Defaults() {
	target := decimal.NewFromInt(90)
	suite.mockProjectRepo.On("FindProjectAccess", suite.ctx, "p1").Return(projectAccess(), nil).Once()
	suite.mockKpiRepo.On("SaveKpi", suite.ctx, mock.MatchedBy(func(k domain.Kpi) bool {
		return k.Type == domain.KpiNumeric && k.IsActive && k.CreatorID == managerPrincipal.UserID &&
			*k.ProjectID == "p1" && k.Target.Valid && k.Target.Decimal.Equal(target) && k.Unit == nil
	})).Return(nil).Once()
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, mock.AnythingOfType("string")).Return(projectKpi(), nil).Once()

	_, err := suite.service.CreateKpi(suite.ctx, managerPrincipal, dto.CreateKpiRequest{Name: "Velocity", Target: &target, Unit: strPtr(""), ProjectID: strPtr("p1")})
	suite.NoError(err)
}

// --- Update / Delete Tests ---
func (suite *KpiServiceTestSuite) TestUpdateKpi_MemberCannotModify() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()

	_, err := suite.service.UpdateKpi(suite.ctx, employeePrincipal, "k1", dto.UpdateKpiRequest{Name: strPtr("X")})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *KpiServiceTestSuite) TestUpdateKpi_ProjectManagerMovesKpi() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Twice()
	suite.mockProjectRepo.On("FindProjectAccess", suite.ctx, "p2").Return(&domain.ProjectAccess{ProjectID: "p2", ManagerID: "someone"}, nil).Once()

	_, err := suite.service.UpdateKpi(suite.ctx, managerPrincipal, "k1", dto.UpdateKpiRequest{ProjectID: strPtr("p2")})
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal("Insufficient permissions to assign KPI to this project", apperrors.MessageOf(err, ""))

	suite.mockKpiRepo.On("UpdateKpi", suite.ctx, "k1", mock.MatchedBy(func(p domain.KpiPatch) bool {
		return p.Name.Set && !p.ProjectID.Set
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()

	_, err = suite.service.UpdateKpi(suite.ctx, managerPrincipal, "k1", dto.UpdateKpiRequest{Name: strPtr("Renamed"), ProjectID: strPtr("p1")})
	suite.NoError(err)
}

func (suite *KpiServiceTestSuite) TestDeleteKpi() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k2").Return(standaloneKpi(), nil)
	suite.mockKpiRepo.On("DeleteKpi", suite.ctx, "k2").Return(nil).Once()

	suite.ErrorIs(suite.service.DeleteKpi(suite.ctx, outsiderPrincipal, "k2"), apperrors.ErrForbidden)
	suite.NoError(suite.service.DeleteKpi(suite.ctx, managerPrincipal, "k2"))
}

// --- Value Tests ---
func (suite *KpiServiceTestSuite) TestCreateKpiValue_MemberRecords() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()
	suite.mockKpiRepo.On("SaveKpiValue", suite.ctx, mock.MatchedBy(func(v domain.KpiValue) bool {
		return v.KpiID == "k1" && v.UserID == employeePrincipal.UserID && v.Value.Equal(decimal.NewFromInt(42)) && !v.Date.IsZero()
	})).Return(nil).Once()
	suite.mockKpiRepo.On("FindKpiValueByID", suite.ctx, mock.AnythingOfType("string")).
		Return(&domain.KpiValue{ValueID: "v1", KpiID: "k1", UserID: employeePrincipal.UserID}, nil).Once()

	value := decimal.NewFromInt(42)
	got, err := suite.service.CreateKpiValue(suite.ctx, employeePrincipal, "k1", dto.CreateKpiValueRequest{Value: &value})
	suite.Require().NoError(err)
	suite.Equal("v1", got.ValueID)
}

func (suite *KpiServiceTestSuite) TestCreateKpiValue_RequiresValue() {
	_, err := suite.service.CreateKpiValue(suite.ctx, employeePrincipal, "k1", dto.CreateKpiValueRequest{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *KpiServiceTestSuite) TestUpdateKpiValue_Permissions() {
	value := &domain.KpiValue{ValueID: "v1", KpiID: "k1", UserID: "employee-3"}
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil)
	suite.mockKpiRepo.On("FindKpiValueByID", suite.ctx, "v1").Return(value, nil)

	// another member may read the KPI but not touch someone else's value
	_, err := suite.service.UpdateKpiValue(suite.ctx, employeePrincipal, "k1", "v1", dto.UpdateKpiValueRequest{Notes: strPtr("x")})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockKpiRepo.On("UpdateKpiValue", suite.ctx, "v1", mock.MatchedBy(func(p domain.KpiValuePatch) bool {
		return p.Notes.Set && *p.Notes.Value == "checked" && !p.Date.Set
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err = suite.service.UpdateKpiValue(suite.ctx, managerPrincipal, "k1", "v1", dto.UpdateKpiValueRequest{Notes: strPtr("checked"), Date: strPtr("")})
	suite.NoError(err, "project manager may modify any value")
}

func (suite *KpiServiceTestSuite) TestDeleteKpiValue_Recorder() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()
	suite.mockKpiRepo.On("FindKpiValueByID", suite.ctx, "v1").Return(&domain.KpiValue{ValueID: "v1", KpiID: "k1", UserID: employeePrincipal.UserID}, nil).Once()
	suite.mockKpiRepo.On("DeleteKpiValue", suite.ctx, "v1").Return(nil).Once()

	suite.NoError(suite.service.DeleteKpiValue(suite.ctx, employeePrincipal, "k1", "v1"))
}

func (suite *KpiServiceTestSuite) TestDeleteKpiValue_WrongKpiIsNotFound() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()
	suite.mockKpiRepo.On("FindKpiValueByID", suite.ctx, "v9").Return(&domain.KpiValue{ValueID: "v9", KpiID: "k2"}, nil).Once()

	err := suite.service.DeleteKpiValue(suite.ctx, adminPrincipal, "k1", "v9")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("KPI value not found", apperrors.MessageOf(err, ""))
}

func (suite *KpiServiceTestSuite) TestListKpiValues_Pagination() {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	values := []domain.KpiValue{
		{ValueID: "v3", KpiID: "k1", Date: day(3), Timestamps: domain.Timestamps{CreatedAt: day(3)}},
		{ValueID: "v2", KpiID: "k1", Date: day(2), Timestamps: domain.Timestamps{CreatedAt: day(2)}},
		{ValueID: "v1", KpiID: "k1", Date: day(1), Timestamps: domain.Timestamps{CreatedAt: day(1)}},
	}
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil)
	suite.mockKpiRepo.On("FindKpiValues", suite.ctx, "k1", 3, (*pagination.Cursor)(nil)).Return(values, nil).Once()

	page, err := suite.service.ListKpiValues(suite.ctx, employeePrincipal, "k1", dto.ListKpiValuesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(page.Values, 2)
	suite.Require().NotEmpty(page.NextToken)

	cursor, err := pagination.DecodeToken(page.NextToken)
	suite.Require().NoError(err)
	suite.Equal("v2", cursor.ID)

	suite.mockKpiRepo.On("FindKpiValues", suite.ctx, "k1", 3, &cursor).Return(values[2:], nil).Once()
	page, err = suite.service.ListKpiValues(suite.ctx, employeePrincipal, "k1", dto.ListKpiValuesParams{Limit: 2, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Len(page.Values, 1)
	suite.Empty(page.NextToken)
}

func (suite *KpiServiceTestSuite) TestListKpiValues_BadToken() {
	suite.mockKpiRepo.On("FindKpiByID", suite.ctx, "k1").Return(projectKpi(), nil).Once()

	_, err := suite.service.ListKpiValues(suite.ctx, adminPrincipal, "k1", dto.ListKpiValuesParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestKpiServiceTestSuite(t *testing.T) {
	suite.Run(t, new(KpiServiceTestSuite))
}
