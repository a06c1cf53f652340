package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/utils/pagination"
)

// KpiReader defines read operations for KPI data
type KpiReader interface {
	// FindKpiByID retrieves a KPI with its creator, project reference, value count and access context.
	FindKpiByID(ctx context.Context, kpiID string) (*domain.KpiDetails, error)

	// FindKpis retrieves KPIs matching the filter and its visibility, newest first.
	FindKpis(ctx context.Context, filter domain.KpiFilter) ([]domain.KpiDetails, error)
}

// KpiWriter defines write operations for KPI data
type KpiWriter interface {
	SaveKpi(ctx context.Context, kpi domain.Kpi) error
	UpdateKpi(ctx context.Context, kpiID string, patch domain.KpiPatch, now time.Time) error
	// DeleteKpi removes a KPI together with its values.
	DeleteKpi(ctx context.Context, kpiID string) error
}

// KpiValueManager defines operations on recorded KPI values
type KpiValueManager interface {
	// FindKpiValueByID retrieves a value with its recorder summary.
	FindKpiValueByID(ctx context.Context, valueID string) (*domain.KpiValue, error)

	// FindKpiValues retrieves up to limit values of a KPI ordered by date, newest first,
	// starting after the cursor when one is given.
	FindKpiValues(ctx context.Context, kpiID string, limit int, after *pagination.Cursor) ([]domain.KpiValue, error)

	SaveKpiValue(ctx context.Context, value domain.KpiValue) error
	UpdateKpiValue(ctx context.Context, valueID string, patch domain.KpiValuePatch, now time.Time) error
	DeleteKpiValue(ctx context.Context, valueID string) error
}

// KpiRepositoryFacade combines all KPI-related repository interfaces
type KpiRepositoryFacade interface {
	KpiReader
	KpiWriter
	KpiValueManager
}
