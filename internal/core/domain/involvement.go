package domain

import "slices"

// ProjectRelation names one way a user can be related to a project.
// The same relation lists drive single-record checks (HoldsFor) and the
// store-side listing filters built by the database adapters.
type ProjectRelation string

const (
	ProjectRelationManager ProjectRelation = "manager"
	ProjectRelationCreator ProjectRelation = "creator"
	ProjectRelationMember  ProjectRelation = "member"
)

// ProjectInvolvement is the set of relations that make a user involved with a project.
var ProjectInvolvement = []ProjectRelation{ProjectRelationManager, ProjectRelationCreator, ProjectRelationMember}

// ProjectStewardship is the subset of relations allowed to modify a project and its KPIs.
var ProjectStewardship = []ProjectRelation{ProjectRelationManager, ProjectRelationCreator}

// HoldsFor reports whether userID stands in relation r to the project.
func (r ProjectRelation) HoldsFor(userID string, p ProjectAccess) bool {
	if userID == "" {
		return false
	}
	switch r {
	case ProjectRelationManager:
		return p.ManagerID == userID
	case ProjectRelationCreator:
		return p.CreatorID == userID
	case ProjectRelationMember:
		return slices.Contains(p.MemberIDs, userID)
	}
	return false
}

// AnyProjectRelation reports whether any of rels holds for userID.
func AnyProjectRelation(rels []ProjectRelation, userID string, p ProjectAccess) bool {
	for _, r := range rels {
		if r.HoldsFor(userID, p) {
			return true
		}
	}
	return false
}

// KpiScope describes a KPI relation: being its creator (when Creator is set) or
// standing in one of Project relations to the KPI's project.
type KpiScope struct {
	Creator bool
	Project []ProjectRelation
}

// KpiInvolvement makes a user involved with a KPI.
var KpiInvolvement = KpiScope{Creator: true, Project: ProjectInvolvement}

// KpiStewardship allows a user to modify or delete a KPI.
var KpiStewardship = KpiScope{Creator: true, Project: ProjectStewardship}

// HoldsFor reports whether userID is within scope s for the KPI.
func (s KpiScope) HoldsFor(userID string, k KpiAccess) bool {
	if userID == "" {
		return false
	}
	if s.Creator && k.CreatorID == userID {
		return true
	}
	return k.Project != nil && AnyProjectRelation(s.Project, userID, *k.Project)
}

// ProjectVisibility restricts a project listing. When All is false only projects
// to which UserID stands in one of Relations are returned.
type ProjectVisibility struct {
	All       bool
	UserID    string
	Relations []ProjectRelation
}

// KpiVisibility restricts a KPI listing the same way for KPIs.
type KpiVisibility struct {
	All    bool
	UserID string
	Scope  KpiScope
}
