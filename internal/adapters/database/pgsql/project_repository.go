package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	"github.com/SscSPs/teamops_backend/internal/models"
	"github.com/SscSPs/teamops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	msgManagerReference  = "Manager not found or inactive"
	msgEmployeeReference = "Employee not found or inactive"
	msgAlreadyAssigned   = "Employee is already assigned to this project"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectSelectQuery = `
SELECT
	p.id, p.name, p.description, p.status, p.start_date, p.end_date, p.budget,
	p.manager_id, p.creator_id, p.created_at, p.updated_at,
	m.first_name AS manager_first_name, m.last_name AS manager_last_name, m.email AS manager_email,
	c.first_name AS creator_first_name, c.last_name AS creator_last_name, c.email AS creator_email,
	(SELECT COUNT(*) FROM employee_projects cnt_ep WHERE cnt_ep.project_id = p.id) AS employee_count,
	(SELECT COUNT(*) FROM kpis cnt_k WHERE cnt_k.project_id = p.id) AS kpi_count
FROM projects p
JOIN users m ON m.id = p.manager_id
JOIN users c ON c.id = p.creator_id
`

const membershipSelectQuery = `
SELECT
	ep.user_id, ep.project_id, ep.role, ep.start_date, ep.end_date, ep.created_at,
	u.first_name AS user_first_name, u.last_name AS user_last_name, u.email AS user_email
FROM employee_projects ep
JOIN users u ON u.id = ep.user_id
`

func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.ProjectDetails, error) {
	rows, err := r.Pool.Query(ctx, projectSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	projectRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProjectRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect project rows: %w", err)
	}

	projects := make([]domain.ProjectDetails, len(projectRows))
	ids := make([]string, len(projectRows))
	for i, row := range projectRows {
		projects[i] = mapping.ToDomainProjectDetails(row)
		ids[i] = row.ProjectID
	}
	if len(projects) == 0 {
		return projects, nil
	}

	members, err := r.membersOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if m, ok := members[projects[i].ProjectID]; ok {
			projects[i].Members = m
		}
	}
	return projects, nil
}

// membersOf loads the memberships of several projects in one query, keyed by project id.
func (r *PgxProjectRepository) membersOf(ctx context.Context, projectIDs []string) (map[string][]domain.EmployeeProject, error) {
	rows, err := r.Pool.Query(ctx, membershipSelectQuery+` WHERE ep.project_id = ANY($1) ORDER BY ep.created_at, ep.user_id`, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query project members: %w", err)
	}
	memberRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MembershipRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect member rows: %w", err)
	}
	byProject := make(map[string][]domain.EmployeeProject, len(projectIDs))
	for _, row := range memberRows {
		byProject[row.ProjectID] = append(byProject[row.ProjectID], mapping.ToDomainMembership(row))
	}
	return byProject, nil
}

func (r *PgxProjectRepository) kpisOf(ctx context.Context, projectID string) ([]domain.KpiSummary, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, name, type, target, unit, is_active FROM kpis WHERE project_id = $1 ORDER BY created_at DESC, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query project kpis: %w", err)
	}
	kpiRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProjectKpiRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect project kpi rows: %w", err)
	}
	kpis := make([]domain.KpiSummary, len(kpiRows))
	for i, row := range kpiRows {
		kpis[i] = mapping.ToDomainKpiSummary(row)
	}
	return kpis, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	projects, err := r.getProjects(ctx, `WHERE p.id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.ErrNotFound
	}
	project := projects[0]
	if project.Kpis, err = r.kpisOf(ctx, projectID); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *PgxProjectRepository) FindProjectAccess(ctx context.Context, projectID string) (*domain.ProjectAccess, error) {
	query := `
		SELECT p.id, p.manager_id, p.creator_id,
			ARRAY(SELECT ep.user_id FROM employee_projects ep WHERE ep.project_id = p.id) AS member_ids
		FROM projects p
		WHERE p.id = $1
	`
	var access domain.ProjectAccess
	err := r.Pool.QueryRow(ctx, query, projectID).Scan(&access.ProjectID, &access.ManagerID, &access.CreatorID, &access.MemberIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load access of project %s: %w", projectID, err)
	}
	return &access, nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectDetails, error) {
	q := &queryArgs{}
	var conds []string
	if filter.Status != nil {
		conds = append(conds, "p.status = "+q.add(string(*filter.Status)))
	}
	if filter.ManagerID != "" {
		conds = append(conds, "p.manager_id = "+q.add(filter.ManagerID))
	}
	if filter.Search != "" {
		p := q.add(containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %[1]s OR p.description ILIKE %[1]s)", p))
	}
	if vis := projectVisibilitySQL(filter.Visibility, q); vis != "" {
		conds = append(conds, vis)
	}
	return r.getProjects(ctx, whereClause(conds)+" ORDER BY p.created_at DESC, p.id", q.args...)
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			id, name, description, status, start_date, end_date, budget,
			manager_id, creator_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		string(project.Status),
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.ManagerID,
		project.CreatorID,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return writeError(err, "save project "+project.ProjectID, "Project already exists", msgManagerReference)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, projectID string, patch domain.ProjectPatch, now time.Time) error {
	q := &queryArgs{}
	s := setClause{q: q}
	if patch.Name.Set {
		s.set("name", patch.Name.Value)
	}
	if patch.Description.Set {
		s.set("description", patch.Description.Value)
	}
	if patch.Status.Set {
		s.set("status", string(patch.Status.Value))
	}
	if patch.StartDate.Set {
		s.set("start_date", patch.StartDate.Value)
	}
	if patch.EndDate.Set {
		s.set("end_date", patch.EndDate.Value)
	}
	if patch.Budget.Set {
		s.set("budget", patch.Budget.Value)
	}
	if patch.ManagerID.Set {
		s.set("manager_id", patch.ManagerID.Value)
	}
	if s.empty() {
		return nil
	}
	s.set("updated_at", now)

	query := "UPDATE projects SET " + s.String() + " WHERE id = " + q.add(projectID)
	cmdTag, err := r.Pool.Exec(ctx, query, q.args...)
	if err != nil {
		return writeError(err, "update project "+projectID, "Project already exists", msgManagerReference)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) FindMembership(ctx context.Context, projectID, userID string) (*domain.EmployeeProject, error) {
	rows, err := r.Pool.Query(ctx, membershipSelectQuery+` WHERE ep.project_id = $1 AND ep.user_id = $2`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MembershipRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect membership row: %w", err)
	}
	membership := mapping.ToDomainMembership(row)
	return &membership, nil
}

func (r *PgxProjectRepository) SaveMembership(ctx context.Context, membership domain.EmployeeProject) error {
	query := `
		INSERT INTO employee_projects (user_id, project_id, role, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.ProjectID,
		membership.Role,
		membership.StartDate,
		membership.EndDate,
		membership.CreatedAt,
	)
	if err != nil {
		return writeError(err, "assign user "+membership.UserID+" to project "+membership.ProjectID, msgAlreadyAssigned, msgEmployeeReference)
	}
	return nil
}

func (r *PgxProjectRepository) DeleteMembership(ctx context.Context, projectID, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM employee_projects WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove user %s from project %s: %w", userID, projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
