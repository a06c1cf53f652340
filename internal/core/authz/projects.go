package authz

import "github.com/SscSPs/teamops_backend/internal/core/domain"

// IsInvolvedInProject is the project involvement predicate: manager, creator or member.
func IsInvolvedInProject(userID string, project domain.ProjectAccess) bool {
	return domain.AnyProjectRelation(domain.ProjectInvolvement, userID, project)
}

// ProjectVisibility returns the store-side filter equivalent of CanReadProject.
func ProjectVisibility(p domain.Principal) domain.ProjectVisibility {
	if p.IsAdmin() {
		return domain.ProjectVisibility{All: true}
	}
	return domain.ProjectVisibility{UserID: p.UserID, Relations: domain.ProjectInvolvement}
}

// CanReadProject allows ADMIN or any involved user.
func CanReadProject(p domain.Principal, project domain.ProjectAccess) error {
	if p.IsAdmin() || IsInvolvedInProject(p.UserID, project) {
		return nil
	}
	return deny("not involved with this project")
}

// CanCreateProject allows ADMIN and MANAGER.
func CanCreateProject(p domain.Principal) error {
	if p.Role == domain.RoleAdmin || p.Role == domain.RoleManager {
		return nil
	}
	return deny("only administrators and managers can create projects")
}

// CanUpdateProject allows ADMIN, the project's manager or its creator.
func CanUpdateProject(p domain.Principal, project domain.ProjectAccess) error {
	if p.IsAdmin() || domain.AnyProjectRelation(domain.ProjectStewardship, p.UserID, project) {
		return nil
	}
	return deny("only the project manager or creator can update this project")
}

// CanDeleteProject allows ADMIN only.
func CanDeleteProject(p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return deny("only administrators can delete projects")
}

// CanManageProjectMembers allows ADMIN or the project's manager to assign and remove employees.
func CanManageProjectMembers(p domain.Principal, project domain.ProjectAccess) error {
	if p.IsAdmin() || domain.ProjectRelationManager.HoldsFor(p.UserID, project) {
		return nil
	}
	return deny("only the project manager can manage project members")
}
