package services

import (
	"context"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
)

// KpiReaderSvc defines read operations for KPIs
type KpiReaderSvc interface {
	ListKpis(ctx context.Context, actor domain.Principal, filter domain.KpiFilter) ([]domain.KpiDetails, error)
	GetKpiByID(ctx context.Context, actor domain.Principal, kpiID string) (*domain.KpiDetails, error)
}

// KpiWriterSvc defines write operations for KPIs
type KpiWriterSvc interface {
	CreateKpi(ctx context.Context, actor domain.Principal, req dto.CreateKpiRequest) (*domain.KpiDetails, error)
	UpdateKpi(ctx context.Context, actor domain.Principal, kpiID string, req dto.UpdateKpiRequest) (*domain.KpiDetails, error)
	DeleteKpi(ctx context.Context, actor domain.Principal, kpiID string) error
}

// KpiValueSvc defines operations on recorded KPI values. Values are always addressed under their KPI.
type KpiValueSvc interface {
	ListKpiValues(ctx context.Context, actor domain.Principal, kpiID string, params dto.ListKpiValuesParams) (*domain.KpiValuePage, error)
	CreateKpiValue(ctx context.Context, actor domain.Principal, kpiID string, req dto.CreateKpiValueRequest) (*domain.KpiValue, error)
	UpdateKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string, req dto.UpdateKpiValueRequest) (*domain.KpiValue, error)
	DeleteKpiValue(ctx context.Context, actor domain.Principal, kpiID, valueID string) error
}

// KpiSvcFacade combines all KPI-related service interfaces
type KpiSvcFacade interface {
	KpiReaderSvc
	KpiWriterSvc
	KpiValueSvc
}
