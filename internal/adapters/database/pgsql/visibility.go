package pgsql

import (
	"strings"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
)

// projectRelationSQL compiles one project relation for the projects row aliased as alias.
// userParam is the placeholder holding the user id.
func projectRelationSQL(rel domain.ProjectRelation, alias, userParam string) string {
	switch rel {
	case domain.ProjectRelationManager:
		return alias + ".manager_id = " + userParam
	case domain.ProjectRelationCreator:
		return alias + ".creator_id = " + userParam
	case domain.ProjectRelationMember:
		return "EXISTS (SELECT 1 FROM employee_projects vis_ep WHERE vis_ep.project_id = " + alias +
			".id AND vis_ep.user_id = " + userParam + ")"
	}
	return "FALSE"
}

func anyProjectRelationSQL(rels []domain.ProjectRelation, alias, userParam string) []string {
	conds := make([]string, 0, len(rels))
	for _, rel := range rels {
		conds = append(conds, projectRelationSQL(rel, alias, userParam))
	}
	return conds
}

// projectVisibilitySQL returns the condition restricting projects aliased p to v, or "" when v allows all.
func projectVisibilitySQL(v domain.ProjectVisibility, q *queryArgs) string {
	if v.All {
		return ""
	}
	conds := anyProjectRelationSQL(v.Relations, "p", q.add(v.UserID))
	if len(conds) == 0 {
		return "FALSE"
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}

// kpiVisibilitySQL returns the condition restricting KPIs aliased k (with their project left-joined as p)
// to v, or "" when v allows all.
func kpiVisibilitySQL(v domain.KpiVisibility, q *queryArgs) string {
	if v.All {
		return ""
	}
	userParam := q.add(v.UserID)
	var conds []string
	if v.Scope.Creator {
		conds = append(conds, "k.creator_id = "+userParam)
	}
	// a standalone KPI has a NULL p row, so every project relation is false for it
	conds = append(conds, anyProjectRelationSQL(v.Scope.Project, "p", userParam)...)
	if len(conds) == 0 {
		return "FALSE"
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}
