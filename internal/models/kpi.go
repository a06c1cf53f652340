package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KpiRow is a KPI joined with its creator, the project it belongs to (if any) and its value count.
type KpiRow struct {
	KpiID       string              `db:"id"`
	Name        string              `db:"name"`
	Description *string             `db:"description"`
	Type        string              `db:"type"`
	Target      decimal.NullDecimal `db:"target"`
	Unit        *string             `db:"unit"`
	IsActive    bool                `db:"is_active"`
	ProjectID   *string             `db:"project_id"`
	CreatorID   string              `db:"creator_id"`
	Timestamps

	CreatorFirstName string `db:"creator_first_name"`
	CreatorLastName  string `db:"creator_last_name"`
	CreatorEmail     string `db:"creator_email"`

	// Nil when the KPI is standalone.
	ProjectName      *string `db:"project_name"`
	ProjectManagerID *string `db:"project_manager_id"`
	ProjectCreatorID *string `db:"project_creator_id"`

	ValueCount int64 `db:"value_count"`
}

// KpiValueRow is a kpi_values row joined with the recorder.
type KpiValueRow struct {
	ValueID string          `db:"id"`
	KpiID   string          `db:"kpi_id"`
	UserID  string          `db:"user_id"`
	Value   decimal.Decimal `db:"value"`
	Date    time.Time       `db:"date"`
	Notes   *string         `db:"notes"`
	Timestamps

	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
	UserEmail     string `db:"user_email"`
}
