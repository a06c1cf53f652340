package dto

import (
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateKpiRequest defines the data needed to create a new KPI.
type CreateKpiRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Type        *domain.KpiType  `json:"type" binding:"omitempty,oneof=NUMERIC PERCENTAGE CURRENCY BOOLEAN"`
	Target      *decimal.Decimal `json:"target" swaggertype:"number"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	IsActive    *bool            `json:"isActive"`
	ProjectID   *string          `json:"projectId" binding:"omitempty,min=1"`
}

// UpdateKpiRequest defines the data allowed for updating a KPI.
type UpdateKpiRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Type        *domain.KpiType  `json:"type" binding:"omitempty,oneof=NUMERIC PERCENTAGE CURRENCY BOOLEAN"`
	Target      *decimal.Decimal `json:"target" swaggertype:"number"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	IsActive    *bool            `json:"isActive"`
	ProjectID   *string          `json:"projectId" binding:"omitempty,min=1"`
}

// ListKpisParams defines query parameters for listing KPIs.
type ListKpisParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=NUMERIC PERCENTAGE CURRENCY BOOLEAN"`
	IsActive  *bool  `form:"isActive"`
	ProjectID string `form:"projectId"`
	Search    string `form:"search" binding:"max=100"`
}

// ToKpiFilter converts query parameters into a domain filter. Visibility is added by the service.
func (p ListKpisParams) ToKpiFilter() domain.KpiFilter {
	f := domain.KpiFilter{IsActive: p.IsActive, ProjectID: p.ProjectID, Search: p.Search}
	if p.Type != "" {
		t := domain.KpiType(p.Type)
		f.Type = &t
	}
	return f
}

// CreateKpiValueRequest records a value. Date is an RFC 3339 string and defaults to now.
type CreateKpiValueRequest struct {
	Value *decimal.Decimal `json:"value" binding:"required" swaggertype:"number"`
	Date  *string          `json:"date"`
	Notes *string          `json:"notes" binding:"omitempty,max=500"`
}

// UpdateKpiValueRequest updates a recorded value. An empty date is ignored.
type UpdateKpiValueRequest struct {
	Value *decimal.Decimal `json:"value" swaggertype:"number"`
	Date  *string          `json:"date"`
	Notes *string          `json:"notes" binding:"omitempty,max=500"`
}

// ListKpiValuesParams defines cursor pagination for KPI values.
type ListKpiValuesParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// KpiResponse defines the data returned for a KPI.
type KpiResponse struct {
	KpiID       string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Type        domain.KpiType     `json:"type"`
	Target      *decimal.Decimal   `json:"target" swaggertype:"number"`
	Unit        *string            `json:"unit"`
	IsActive    bool               `json:"isActive"`
	ProjectID   *string            `json:"projectId"`
	CreatorID   string             `json:"creatorId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Creator     domain.UserSummary `json:"creator"`
	Project     *domain.ProjectRef `json:"project"`
	Count       KpiCountsResponse  `json:"_count"`
}

// KpiCountsResponse carries relation counts of a KPI.
type KpiCountsResponse struct {
	Values int `json:"values"`
}

// KpiValueResponse defines the data returned for a KPI value.
type KpiValueResponse struct {
	ValueID   string             `json:"id"`
	KpiID     string             `json:"kpiId"`
	UserID    string             `json:"userId"`
	Value     decimal.Decimal    `json:"value" swaggertype:"number"`
	Date      time.Time          `json:"date"`
	Notes     *string            `json:"notes"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	User      domain.UserSummary `json:"user"`
}

// KpiValuePageResponse is one page of values.
type KpiValuePageResponse struct {
	Values    []KpiValueResponse `json:"values"`
	NextToken string             `json:"nextToken,omitempty"`
}

// ToKpiResponse converts a domain.KpiDetails to KpiResponse DTO
func ToKpiResponse(k *domain.KpiDetails) KpiResponse {
	return KpiResponse{
		KpiID:       k.KpiID,
		Name:        k.Name,
		Description: k.Description,
		Type:        k.Type,
		Target:      nullDecimalPtr(k.Target),
		Unit:        k.Unit,
		IsActive:    k.IsActive,
		ProjectID:   k.ProjectID,
		CreatorID:   k.CreatorID,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
		Creator:     k.Creator,
		Project:     k.Project,
		Count:       KpiCountsResponse{Values: k.ValueCount},
	}
}

// ToKpiResponses converts a slice of KPI details.
func ToKpiResponses(kpis []domain.KpiDetails) []KpiResponse {
	out := make([]KpiResponse, len(kpis))
	for i := range kpis {
		out[i] = ToKpiResponse(&kpis[i])
	}
	return out
}

// ToKpiValueResponse converts a domain.KpiValue.
func ToKpiValueResponse(v *domain.KpiValue) KpiValueResponse {
	return KpiValueResponse{
		ValueID:   v.ValueID,
		KpiID:     v.KpiID,
		UserID:    v.UserID,
		Value:     v.Value,
		Date:      v.Date,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		User:      v.Recorder,
	}
}

// ToKpiValuePageResponse converts a page of values.
func ToKpiValuePageResponse(page *domain.KpiValuePage) KpiValuePageResponse {
	values := make([]KpiValueResponse, len(page.Values))
	for i := range page.Values {
		values[i] = ToKpiValueResponse(&page.Values[i])
	}
	return KpiValuePageResponse{Values: values, NextToken: page.NextToken}
}
