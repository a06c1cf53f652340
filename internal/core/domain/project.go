package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

// Project is a unit of work with a manager and a set of assigned employees.
type Project struct {
	ProjectID   string              `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Description *string             `json:"description" db:"description"`
	Status      ProjectStatus       `json:"status" db:"status"`
	StartDate   *time.Time          `json:"startDate" db:"start_date"`
	EndDate     *time.Time          `json:"endDate" db:"end_date"`
	Budget      decimal.NullDecimal `json:"budget" db:"budget"`
	ManagerID   string              `json:"managerId" db:"manager_id"`
	CreatorID   string              `json:"creatorId" db:"creator_id"`
	Timestamps
}

// EmployeeProject is the assignment of a user to a project.
type EmployeeProject struct {
	UserID    string      `json:"userId" db:"user_id"`
	ProjectID string      `json:"projectId" db:"project_id"`
	Role      *string     `json:"role" db:"role"`
	StartDate time.Time   `json:"startDate" db:"start_date"`
	EndDate   *time.Time  `json:"endDate" db:"end_date"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	User      UserSummary `json:"user" db:"-"`
}

// KpiSummary is the short form of a KPI embedded in a project read.
type KpiSummary struct {
	KpiID    string              `json:"id"`
	Name     string              `json:"name"`
	Type     KpiType             `json:"type"`
	Target   decimal.NullDecimal `json:"target"`
	Unit     *string             `json:"unit"`
	IsActive bool                `json:"isActive"`
}

// ProjectDetails is a project together with the related records shown to callers.
type ProjectDetails struct {
	Project
	Manager     UserSummary
	Creator     UserSummary
	Members     []EmployeeProject
	MemberCount int
	KpiCount    int
	Kpis        []KpiSummary // only populated for single reads
}

// Access returns the relationship context the authorization rules need.
func (d *ProjectDetails) Access() ProjectAccess {
	ids := make([]string, len(d.Members))
	for i, m := range d.Members {
		ids[i] = m.UserID
	}
	return ProjectAccess{ProjectID: d.ProjectID, ManagerID: d.ManagerID, CreatorID: d.CreatorID, MemberIDs: ids}
}

// ProjectAccess is the minimal relationship context of a project.
type ProjectAccess struct {
	ProjectID string
	ManagerID string
	CreatorID string
	MemberIDs []string
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Status     *ProjectStatus
	ManagerID  string
	Search     string
	Visibility ProjectVisibility
}

// ProjectPatch is a partial update of a project. Date slots set to nil clear the column.
type ProjectPatch struct {
	Name        Field[string]
	Description Field[*string]
	Status      Field[ProjectStatus]
	StartDate   Field[*time.Time]
	EndDate     Field[*time.Time]
	Budget      Field[decimal.NullDecimal]
	ManagerID   Field[string]
}

// Empty reports whether the patch writes nothing.
func (p ProjectPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Status.Set && !p.StartDate.Set &&
		!p.EndDate.Set && !p.Budget.Set && !p.ManagerID.Set
}
