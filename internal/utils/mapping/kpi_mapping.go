package mapping

import (
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/models"
)

// ToDomainKpiDetails converts a joined KPI row. memberIDs are the members of the KPI's project, if any.
func ToDomainKpiDetails(m models.KpiRow, memberIDs []string) domain.KpiDetails {
	d := domain.KpiDetails{
		Kpi: domain.Kpi{
			KpiID:       m.KpiID,
			Name:        m.Name,
			Description: m.Description,
			Type:        domain.KpiType(m.Type),
			Target:      m.Target,
			Unit:        m.Unit,
			IsActive:    m.IsActive,
			ProjectID:   m.ProjectID,
			CreatorID:   m.CreatorID,
			Timestamps:  ToDomainTimestamps(m.Timestamps),
		},
		Creator: domain.UserSummary{
			UserID:    m.CreatorID,
			FirstName: m.CreatorFirstName,
			LastName:  m.CreatorLastName,
			Email:     m.CreatorEmail,
		},
		ValueCount: int(m.ValueCount),
		Access:     domain.KpiAccess{KpiID: m.KpiID, CreatorID: m.CreatorID},
	}

	if m.ProjectID != nil && m.ProjectName != nil {
		d.Project = &domain.ProjectRef{ProjectID: *m.ProjectID, Name: *m.ProjectName}
		d.Access.Project = &domain.ProjectAccess{
			ProjectID: *m.ProjectID,
			ManagerID: deref(m.ProjectManagerID),
			CreatorID: deref(m.ProjectCreatorID),
			MemberIDs: memberIDs,
		}
	}
	return d
}

// ToDomainKpiValue converts a joined value row.
func ToDomainKpiValue(m models.KpiValueRow) domain.KpiValue {
	return domain.KpiValue{
		ValueID:    m.ValueID,
		KpiID:      m.KpiID,
		UserID:     m.UserID,
		Value:      m.Value,
		Date:       m.Date,
		Notes:      m.Notes,
		Timestamps: ToDomainTimestamps(m.Timestamps),
		Recorder: domain.UserSummary{
			UserID:    m.UserID,
			FirstName: m.UserFirstName,
			LastName:  m.UserLastName,
			Email:     m.UserEmail,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
