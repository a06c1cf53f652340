package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/authz"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/SscSPs/teamops_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// kpiService implements KpiSvcFacade.
type kpiService struct {
	BaseService
	kpiRepo     portsrepo.KpiRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewKpiService creates a new KPI service. projectRepo resolves the projects KPIs are attached to.
func NewKpiService(kpiRepo portsrepo.KpiRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.KpiSvcFacade {
	return &kpiService{kpiRepo: kpiRepo, projectRepo: projectRepo}
}

var _ portssvc.KpiSvcFacade = (*kpiService)(nil)

func (s *kpiService) ListKpis(ctx context.Context, actor domain.Principal, filter domain.KpiFilter) ([]domain.KpiDetails, error) {
	filter.Visibility = authz.KpiVisibility(actor)

	kpis, err := s.kpiRepo.FindKpis(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list KPIs")
		return nil, err
	}
	return kpis, nil
}

func (s *kpiService) GetKpiByID(ctx context.Context, actor domain.Principal, kpiID string) (*domain.KpiDetails, error) {
	kpi, err := s.findKpi(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadKpi(actor, kpi.Access); err != nil {
		s.LogWarn(ctx, err, "KPI read denied", slog.String("kpi_id", kpiID))
		return nil, err
	}
	return kpi, nil
}

func (s *kpiService) CreateKpi(ctx context.Context, actor domain.Principal, req dto.CreateKpiRequest) (*domain.KpiDetails, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := authz.CanCreateKpi(actor, nil); err != nil {
		s.LogWarn(ctx, err, "KPI creation denied")
		return nil, err
	}

	projectID := emptyAsNil(req.ProjectID)
	if projectID != nil {
		if err := s.checkAttach(ctx, actor, *projectID, "Insufficient permissions to create KPI for this project"); err != nil {
			return nil, err
		}
	}

	kpiType := domain.KpiNumeric
	if req.Type != nil {
		kpiType = *req.Type
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.Now()
	kpi := domain.Kpi{
		KpiID:       uuid.NewString(),
		Name:        req.Name,
		Description: emptyAsNil(req.Description),
		Type:        kpiType,
		Target:      nullableDecimal(req.Target),
		Unit:        emptyAsNil(req.Unit),
		IsActive:    isActive,
		ProjectID:   projectID,
		CreatorID:   actor.UserID,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.kpiRepo.SaveKpi(ctx, kpi); err != nil {
		s.LogError(ctx, err, "Failed to save KPI", slog.String("kpi_id", kpi.KpiID))
		return nil, err
	}

	s.LogInfo(ctx, "KPI created", slog.String("kpi_id", kpi.KpiID))
	return s.findKpi(ctx, kpi.KpiID)
}

func (s *kpiService) UpdateKpi(ctx context.Context, actor domain.Principal, kpiID string, req dto.UpdateKpiRequest) (*domain.KpiDetails, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	current, err := s.findKpi(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyKpi(actor, current.Access); err != nil {
		s.LogWarn(ctx, err, "KPI update denied", slog.String("kpi_id", kpiID))
		return nil, err
	}

	patch := kpiPatchFrom(req)
	if patch.ProjectID.Set {
		target := patch.ProjectID.Value
		if current.ProjectID != nil && *current.ProjectID == *target {
			patch.ProjectID = domain.Field[*string]{}
		} else if err := s.checkAttach(ctx, actor, *target, "Insufficient permissions to assign KPI to this project"); err != nil {
			return nil, err
		}
	}

	if !patch.Empty() {
		if err := s.kpiRepo.UpdateKpi(ctx, kpiID, patch, s.Now()); err != nil {
			s.LogError(ctx, err, "Failed to update KPI", slog.String("kpi_id", kpiID))
			return nil, err
		}
		s.LogInfo(ctx, "KPI updated", slog.String("kpi_id", kpiID))
	}

	return s.findKpi(ctx, kpiID)
}

func (s *kpiService) DeleteKpi(ctx context.Context, actor domain.Principal, kpiID string) error {
	kpi, err := s.findKpi(ctx, kpiID)
	if err != nil {
		return err
	}
	if err := authz.CanModifyKpi(actor, kpi.Access); err != nil {
		s.LogWarn(ctx, err, "KPI deletion denied", slog.String("kpi_id", kpiID))
		return err
	}

	if err := s.kpiRepo.DeleteKpi(ctx, kpiID); err != nil {
		s.LogError(ctx, err, "Failed to delete KPI", slog.String("kpi_id", kpiID))
		return err
	}

	s.LogInfo(ctx, "KPI deleted", slog.String("kpi_id", kpiID))
	return nil
}

func (s *kpiService) ListKpiValues(ctx context.Context, actor domain.Principal, kpiID string, params dto.ListKpiValuesParams) (*domain.KpiValuePage, error) {
	if _, err := s.GetKpiByID(ctx, actor, kpiID); err != nil {
		return nil, err
	}

	var after *pagination.Cursor
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("Validation failed",
				apperrors.FieldError{Field: "nextToken", Message: "is not a valid page token"})
		}
		after = &cursor
	}

	limit := pagination.ClampLimit(params.Limit)
	values, err := s.kpiRepo.FindKpiValues(ctx, kpiID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list KPI values", slog.String("kpi_id", kpiID))
		return nil, err
	}

	page := &domain.KpiValuePage{Values: values}
	if len(values) > limit {
		page.Values = values[:limit]
		last := page.Values[limit-1]
		page.NextToken = pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.ValueID})
	}
	return page, nil
}

func (s *kpiService) CreateKpiValue(ctx context.Context, actor domain.Principal, kpiID string, req dto.CreateKpiValueRequest) (*domain.KpiValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.GetKpiByID(ctx, actor, kpiID); err != nil {
		return nil, err
	}

	now := s.Now()
	date := now
	if d, err := optionalDate("date", req.Date); err != nil {
		return nil, err
	} else if d != nil {
		date = *d
	}

	value := domain.KpiValue{
		ValueID:    uuid.NewString(),
		KpiID:      kpiID,
		UserID:     actor.UserID,
		Value:      *req.Value,
		Date:       date,
		Notes:      emptyAsNil(req.Notes),
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.kpiRepo.SaveKpiValue(ctx, value); err != nil {
		s.LogError(ctx, err, "Failed to save KPI value", slog.String("kpi_id", kpiID))
		return nil, err
	}

	s.LogInfo(ctx, "KPI value recorded", slog.String("kpi_id", kpiID), slog.String("value_id", value.ValueID))
	return s.findValue(ctx, kpiID, value.ValueID)
}

func (s *kpiService) UpdateKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string, req dto.UpdateKpiValueRequest) (*domain.KpiValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	value, err := s.modifiableValue(ctx, actor, kpiID, valueID)
	if err != nil {
		return nil, err
	}

	var patch domain.KpiValuePatch
	if req.Value != nil {
		patch.Value = domain.SetTo(*req.Value)
	}
	if d, err := optionalDate("date", req.Date); err != nil {
		return nil, err
	} else if d != nil {
		patch.Date = domain.SetTo(*d)
	}
	if req.Notes != nil {
		patch.Notes = domain.SetTo(emptyAsNil(req.Notes))
	}

	if patch.Empty() {
		return value, nil
	}

	if err := s.kpiRepo.UpdateKpiValue(ctx, valueID, patch, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update KPI value", slog.String("value_id", valueID))
		return nil, err
	}

	s.LogInfo(ctx, "KPI value updated", slog.String("kpi_id", kpiID), slog.String("value_id", valueID))
	return s.findValue(ctx, kpiID, valueID)
}

func (s *kpiService) DeleteKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string) error {
	if _, err := s.modifiableValue(ctx, actor, kpiID, valueID); err != nil {
		return err
	}

	if err := s.kpiRepo.DeleteKpiValue(ctx, valueID); err != nil {
		s.LogError(ctx, err, "Failed to delete KPI value", slog.String("value_id", valueID))
		return err
	}

	s.LogInfo(ctx, "KPI value deleted", slog.String("kpi_id", kpiID), slog.String("value_id", valueID))
	return nil
}

// modifiableValue loads a value under a readable KPI and checks that actor may change it.
func (s *kpiService) modifiableValue(ctx context.Context, actor domain.Principal, kpiID, valueID string) (*domain.KpiValue, error) {
	kpi, err := s.GetKpiByID(ctx, actor, kpiID)
	if err != nil {
		return nil, err
	}

	value, err := s.findValue(ctx, kpiID, valueID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanModifyKpiValue(actor, kpi.Access, value.UserID); err != nil {
		s.LogWarn(ctx, err, "KPI value modification denied", slog.String("value_id", valueID))
		return nil, err
	}
	return value, nil
}

// checkAttach resolves the target project and checks that actor may attach a KPI to it.
func (s *kpiService) checkAttach(ctx context.Context, actor domain.Principal, projectID, deniedMsg string) error {
	access, err := s.projectRepo.FindProjectAccess(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to load project access", slog.String("project_id", projectID))
		return err
	}
	if err := authz.CanAttachKpiToProject(actor, access); err != nil {
		s.LogWarn(ctx, err, "KPI project attachment denied", slog.String("project_id", projectID))
		return apperrors.NewAppError(apperrors.ErrForbidden, deniedMsg, err)
	}
	return nil
}

func (s *kpiService) findKpi(ctx context.Context, kpiID string) (*domain.KpiDetails, error) {
	kpi, err := s.kpiRepo.FindKpiByID(ctx, kpiID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("KPI not found")
		}
		s.LogError(ctx, err, "Failed to load KPI", slog.String("kpi_id", kpiID))
		return nil, err
	}
	return kpi, nil
}

// findValue loads a value and hides values that belong to another KPI.
func (s *kpiService) findValue(ctx context.Context, kpiID, valueID string) (*domain.KpiValue, error) {
	value, err := s.kpiRepo.FindKpiValueByID(ctx, valueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("KPI value not found")
		}
		s.LogError(ctx, err, "Failed to load KPI value", slog.String("value_id", valueID))
		return nil, err
	}
	if value.KpiID != kpiID {
		return nil, apperrors.NewNotFoundError("KPI value not found")
	}
	return value, nil
}

func kpiPatchFrom(req dto.UpdateKpiRequest) domain.KpiPatch {
	var patch domain.KpiPatch
	if req.Name != nil {
		patch.Name = domain.SetTo(*req.Name)
	}
	if req.Description != nil {
		patch.Description = domain.SetTo(emptyAsNil(req.Description))
	}
	if req.Type != nil {
		patch.Type = domain.SetTo(*req.Type)
	}
	if req.Target != nil {
		patch.Target = domain.SetTo(nullableDecimal(req.Target))
	}
	if req.Unit != nil {
		patch.Unit = domain.SetTo(emptyAsNil(req.Unit))
	}
	if req.IsActive != nil {
		patch.IsActive = domain.SetTo(*req.IsActive)
	}
	if req.ProjectID != nil && strings.TrimSpace(*req.ProjectID) != "" {
		patch.ProjectID = domain.SetTo(req.ProjectID)
	}
	return patch
}

func nullableDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
