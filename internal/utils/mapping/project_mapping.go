package mapping

import (
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/models"
)

// ToDomainProjectDetails converts a joined project row. Members and KPIs are attached by the caller.
func ToDomainProjectDetails(m models.ProjectRow) domain.ProjectDetails {
	return domain.ProjectDetails{
		Project: domain.Project{
			ProjectID:   m.ProjectID,
			Name:        m.Name,
			Description: m.Description,
			Status:      domain.ProjectStatus(m.Status),
			StartDate:   m.StartDate,
			EndDate:     m.EndDate,
			Budget:      m.Budget,
			ManagerID:   m.ManagerID,
			CreatorID:   m.CreatorID,
			Timestamps:  ToDomainTimestamps(m.Timestamps),
		},
		Manager: domain.UserSummary{
			UserID:    m.ManagerID,
			FirstName: m.ManagerFirstName,
			LastName:  m.ManagerLastName,
			Email:     m.ManagerEmail,
		},
		Creator: domain.UserSummary{
			UserID:    m.CreatorID,
			FirstName: m.CreatorFirstName,
			LastName:  m.CreatorLastName,
			Email:     m.CreatorEmail,
		},
		Members:     []domain.EmployeeProject{},
		MemberCount: int(m.EmployeeCount),
		KpiCount:    int(m.KpiCount),
	}
}

// ToDomainMembership converts a joined membership row.
func ToDomainMembership(m models.MembershipRow) domain.EmployeeProject {
	return domain.EmployeeProject{
		UserID:    m.UserID,
		ProjectID: m.ProjectID,
		Role:      m.Role,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		User: domain.UserSummary{
			UserID:    m.UserID,
			FirstName: m.UserFirstName,
			LastName:  m.UserLastName,
			Email:     m.UserEmail,
		},
	}
}

// ToDomainKpiSummary converts a KPI listed under a project.
func ToDomainKpiSummary(m models.ProjectKpiRow) domain.KpiSummary {
	return domain.KpiSummary{
		KpiID:    m.KpiID,
		Name:     m.Name,
		Type:     domain.KpiType(m.Type),
		Target:   m.Target,
		Unit:     m.Unit,
		IsActive: m.IsActive,
	}
}

// ToDomainTimestamps converts model timestamps to domain timestamps
func ToDomainTimestamps(m models.Timestamps) domain.Timestamps {
	return domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}
