package dto

import (
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
// Dates are RFC 3339 strings.
type CreateProjectRequest struct {
	Name        string                `json:"name" binding:"required,min=1,max=100"`
	Description *string               `json:"description" binding:"omitempty,max=500"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	StartDate   *string               `json:"startDate"`
	EndDate     *string               `json:"endDate"`
	Budget      *decimal.Decimal      `json:"budget" swaggertype:"number"`
	ManagerID   string                `json:"managerId" binding:"required"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// An empty startDate or endDate clears the date.
type UpdateProjectRequest struct {
	Name        *string               `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string               `json:"description" binding:"omitempty,max=500"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	StartDate   *string               `json:"startDate"`
	EndDate     *string               `json:"endDate"`
	Budget      *decimal.Decimal      `json:"budget" swaggertype:"number"`
	ManagerID   *string               `json:"managerId" binding:"omitempty,min=1"`
}

// AssignEmployeeRequest assigns a user to a project.
type AssignEmployeeRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	Role      *string `json:"role" binding:"omitempty,max=50"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	ManagerID string `form:"managerId"`
	Search    string `form:"search" binding:"max=100"`
}

// ToProjectFilter converts query parameters into a domain filter. Visibility is added by the service.
func (p ListProjectsParams) ToProjectFilter() domain.ProjectFilter {
	f := domain.ProjectFilter{ManagerID: p.ManagerID, Search: p.Search}
	if p.Status != "" {
		status := domain.ProjectStatus(p.Status)
		f.Status = &status
	}
	return f
}

// CountsResponse carries relation counts of a project.
type CountsResponse struct {
	Employees int `json:"employees"`
	Kpis      int `json:"kpis"`
}

// MembershipResponse is an employee assignment with the assigned user.
type MembershipResponse struct {
	UserID    string             `json:"userId"`
	ProjectID string             `json:"projectId"`
	Role      *string            `json:"role"`
	StartDate time.Time          `json:"startDate"`
	EndDate   *time.Time         `json:"endDate"`
	CreatedAt time.Time          `json:"createdAt"`
	User      domain.UserSummary `json:"user"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID   string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	Budget      *decimal.Decimal     `json:"budget" swaggertype:"number"`
	ManagerID   string               `json:"managerId"`
	CreatorID   string               `json:"creatorId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Manager     domain.UserSummary   `json:"manager"`
	Creator     domain.UserSummary   `json:"creator"`
	Employees   []MembershipResponse `json:"employees"`
	Count       CountsResponse       `json:"_count"`
	Kpis        []domain.KpiSummary  `json:"kpis,omitempty"`
}

// ToMembershipResponse converts a domain.EmployeeProject.
func ToMembershipResponse(m *domain.EmployeeProject) MembershipResponse {
	return MembershipResponse{
		UserID:    m.UserID,
		ProjectID: m.ProjectID,
		Role:      m.Role,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		User:      m.User,
	}
}

// ToProjectResponse converts a domain.ProjectDetails to ProjectResponse DTO
func ToProjectResponse(p *domain.ProjectDetails) ProjectResponse {
	employees := make([]MembershipResponse, len(p.Members))
	for i := range p.Members {
		employees[i] = ToMembershipResponse(&p.Members[i])
	}
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      nullDecimalPtr(p.Budget),
		ManagerID:   p.ManagerID,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Manager:     p.Manager,
		Creator:     p.Creator,
		Employees:   employees,
		Count:       CountsResponse{Employees: p.MemberCount, Kpis: p.KpiCount},
		Kpis:        p.Kpis,
	}
}

// ToProjectResponses converts a slice of project details.
func ToProjectResponses(projects []domain.ProjectDetails) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
