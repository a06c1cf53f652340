package authz

import "github.com/SscSPs/teamops_backend/internal/core/domain"

// IsInvolvedInKpi is the KPI involvement predicate: creator, or involved with the KPI's project.
func IsInvolvedInKpi(userID string, kpi domain.KpiAccess) bool {
	return domain.KpiInvolvement.HoldsFor(userID, kpi)
}

// KpiVisibility returns the store-side filter equivalent of CanReadKpi.
func KpiVisibility(p domain.Principal) domain.KpiVisibility {
	if p.IsAdmin() {
		return domain.KpiVisibility{All: true}
	}
	return domain.KpiVisibility{UserID: p.UserID, Scope: domain.KpiInvolvement}
}

// CanReadKpi allows ADMIN or any user involved with the KPI. KPI values inherit this rule.
func CanReadKpi(p domain.Principal, kpi domain.KpiAccess) error {
	if p.IsAdmin() || IsInvolvedInKpi(p.UserID, kpi) {
		return nil
	}
	return deny("not involved with this KPI")
}

// CanCreateKpi allows ADMIN and MANAGER. When the KPI is attached to a project the
// caller must also be involved with it.
func CanCreateKpi(p domain.Principal, project *domain.ProjectAccess) error {
	if p.Role != domain.RoleAdmin && p.Role != domain.RoleManager {
		return deny("only administrators and managers can create KPIs")
	}
	return CanAttachKpiToProject(p, project)
}

// CanAttachKpiToProject checks involvement with the project a KPI is created in or moved to.
func CanAttachKpiToProject(p domain.Principal, project *domain.ProjectAccess) error {
	if project == nil || p.IsAdmin() || IsInvolvedInProject(p.UserID, *project) {
		return nil
	}
	return deny("not involved with the target project")
}

// CanModifyKpi allows ADMIN, the KPI's creator, or the manager or creator of its project.
func CanModifyKpi(p domain.Principal, kpi domain.KpiAccess) error {
	if p.IsAdmin() || domain.KpiStewardship.HoldsFor(p.UserID, kpi) {
		return nil
	}
	return deny("only the KPI creator or project manager can modify this KPI")
}

// CanModifyKpiValue extends CanModifyKpi with the value's own recorder.
func CanModifyKpiValue(p domain.Principal, kpi domain.KpiAccess, recorderID string) error {
	if isSelf(p, recorderID) {
		return nil
	}
	if err := CanModifyKpi(p, kpi); err != nil {
		return deny("only the recorder, KPI creator or project manager can modify this value")
	}
	return nil
}
