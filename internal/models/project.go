package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectRow is a project joined with its manager, its creator and relation counts.
type ProjectRow struct {
	ProjectID   string              `db:"id"`
	Name        string              `db:"name"`
	Description *string             `db:"description"`
	Status      string              `db:"status"`
	StartDate   *time.Time          `db:"start_date"`
	EndDate     *time.Time          `db:"end_date"`
	Budget      decimal.NullDecimal `db:"budget"`
	ManagerID   string              `db:"manager_id"`
	CreatorID   string              `db:"creator_id"`
	Timestamps

	ManagerFirstName string `db:"manager_first_name"`
	ManagerLastName  string `db:"manager_last_name"`
	ManagerEmail     string `db:"manager_email"`
	CreatorFirstName string `db:"creator_first_name"`
	CreatorLastName  string `db:"creator_last_name"`
	CreatorEmail     string `db:"creator_email"`

	EmployeeCount int64 `db:"employee_count"`
	KpiCount      int64 `db:"kpi_count"`
}

// MembershipRow is an employee_projects row joined with the assigned user.
type MembershipRow struct {
	UserID    string     `db:"user_id"`
	ProjectID string     `db:"project_id"`
	Role      *string    `db:"role"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	CreatedAt time.Time  `db:"created_at"`

	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
	UserEmail     string `db:"user_email"`
}

// ProjectKpiRow is the short form of a KPI listed under a project.
type ProjectKpiRow struct {
	KpiID    string              `db:"id"`
	Name     string              `db:"name"`
	Type     string              `db:"type"`
	Target   decimal.NullDecimal `db:"target"`
	Unit     *string             `db:"unit"`
	IsActive bool                `db:"is_active"`
}
