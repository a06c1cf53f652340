package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// KpiType describes how a KPI's values are interpreted.
type KpiType string

const (
	KpiNumeric    KpiType = "NUMERIC"
	KpiPercentage KpiType = "PERCENTAGE"
	KpiCurrency   KpiType = "CURRENCY"
	KpiBoolean    KpiType = "BOOLEAN"
)

// Valid reports whether t is one of the known types.
func (t KpiType) Valid() bool {
	switch t {
	case KpiNumeric, KpiPercentage, KpiCurrency, KpiBoolean:
		return true
	}
	return false
}

// Kpi is a tracked indicator, optionally attached to a project.
type Kpi struct {
	KpiID       string              `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Description *string             `json:"description" db:"description"`
	Type        KpiType             `json:"type" db:"type"`
	Target      decimal.NullDecimal `json:"target" db:"target"`
	Unit        *string             `json:"unit" db:"unit"`
	IsActive    bool                `json:"isActive" db:"is_active"`
	ProjectID   *string             `json:"projectId" db:"project_id"`
	CreatorID   string              `json:"creatorId" db:"creator_id"`
	Timestamps
}

// ProjectRef is the short form of a project embedded in a KPI read.
type ProjectRef struct {
	ProjectID string `json:"id"`
	Name      string `json:"name"`
}

// KpiDetails is a KPI with the related records shown to callers and the context needed to authorize it.
type KpiDetails struct {
	Kpi
	Creator    UserSummary
	Project    *ProjectRef
	ValueCount int
	Access     KpiAccess
}

// KpiAccess is the minimal relationship context of a KPI. Project is nil when the KPI is standalone.
type KpiAccess struct {
	KpiID     string
	CreatorID string
	Project   *ProjectAccess
}

// KpiValue is a single recorded measurement of a KPI.
type KpiValue struct {
	ValueID string          `json:"id" db:"id"`
	KpiID   string          `json:"kpiId" db:"kpi_id"`
	UserID  string          `json:"userId" db:"user_id"`
	Value   decimal.Decimal `json:"value" db:"value"`
	Date    time.Time       `json:"date" db:"date"`
	Notes   *string         `json:"notes" db:"notes"`
	Timestamps
	Recorder UserSummary `json:"user" db:"-"`
}

// KpiFilter narrows a KPI listing.
type KpiFilter struct {
	Type       *KpiType
	IsActive   *bool
	ProjectID  string
	Search     string
	Visibility KpiVisibility
}

// KpiPatch is a partial update of a KPI.
type KpiPatch struct {
	Name        Field[string]
	Description Field[*string]
	Type        Field[KpiType]
	Target      Field[decimal.NullDecimal]
	Unit        Field[*string]
	IsActive    Field[bool]
	ProjectID   Field[*string]
}

// KpiValuePatch is a partial update of a KPI value.
type KpiValuePatch struct {
	Value Field[decimal.Decimal]
	Date  Field[time.Time]
	Notes Field[*string]
}

// KpiValuePage is one page of a KPI's values, newest first.
type KpiValuePage struct {
	Values    []KpiValue
	NextToken string
}

// Empty reports whether the patch writes nothing.
func (p KpiPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Type.Set && !p.Target.Set &&
		!p.Unit.Set && !p.IsActive.Set && !p.ProjectID.Set
}

// Empty reports whether the patch writes nothing.
func (p KpiValuePatch) Empty() bool {
	return !p.Value.Set && !p.Date.Set && !p.Notes.Set
}
