package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	"github.com/SscSPs/teamops_backend/internal/models"
	"github.com/SscSPs/teamops_backend/internal/utils/mapping"
	"github.com/SscSPs/teamops_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const msgProjectReference = "Project not found"

type PgxKpiRepository struct {
	BaseRepository
}

// newPgxKpiRepository creates a new repository for KPI data.
func newPgxKpiRepository(pool *pgxpool.Pool) portsrepo.KpiRepositoryFacade {
	return &PgxKpiRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.KpiRepositoryFacade = (*PgxKpiRepository)(nil)

const kpiSelectQuery = `
SELECT
	k.id, k.name, k.description, k.type, k.target, k.unit, k.is_active,
	k.project_id, k.creator_id, k.created_at, k.updated_at,
	c.first_name AS creator_first_name, c.last_name AS creator_last_name, c.email AS creator_email,
	p.name AS project_name, p.manager_id AS project_manager_id, p.creator_id AS project_creator_id,
	(SELECT COUNT(*) FROM kpi_values cnt_v WHERE cnt_v.kpi_id = k.id) AS value_count
FROM kpis k
JOIN users c ON c.id = k.creator_id
LEFT JOIN projects p ON p.id = k.project_id
`

const kpiValueSelectQuery = `
SELECT
	v.id, v.kpi_id, v.user_id, v.value, v.date, v.notes, v.created_at, v.updated_at,
	u.first_name AS user_first_name, u.last_name AS user_last_name, u.email AS user_email
FROM kpi_values v
JOIN users u ON u.id = v.user_id
`

func (r *PgxKpiRepository) getKpis(ctx context.Context, filterQuery string, args ...any) ([]domain.KpiDetails, error) {
	rows, err := r.Pool.Query(ctx, kpiSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpis: %w", err)
	}
	kpiRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.KpiRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect kpi rows: %w", err)
	}

	var projectIDs []string
	for _, row := range kpiRows {
		if row.ProjectID != nil {
			projectIDs = append(projectIDs, *row.ProjectID)
		}
	}
	members, err := r.memberIDsOf(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	kpis := make([]domain.KpiDetails, len(kpiRows))
	for i, row := range kpiRows {
		var ids []string
		if row.ProjectID != nil {
			ids = members[*row.ProjectID]
		}
		kpis[i] = mapping.ToDomainKpiDetails(row, ids)
	}
	return kpis, nil
}

// memberIDsOf loads the member ids of several projects, keyed by project id.
func (r *PgxKpiRepository) memberIDsOf(ctx context.Context, projectIDs []string) (map[string][]string, error) {
	byProject := make(map[string][]string, len(projectIDs))
	if len(projectIDs) == 0 {
		return byProject, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT project_id, user_id FROM employee_projects WHERE project_id = ANY($1)`, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query project members: %w", err)
	}
	var projectID, userID string
	_, err = pgx.ForEachRow(rows, []any{&projectID, &userID}, func() error {
		byProject[projectID] = append(byProject[projectID], userID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read project members: %w", err)
	}
	return byProject, nil
}

func (r *PgxKpiRepository) FindKpiByID(ctx context.Context, kpiID string) (*domain.KpiDetails, error) {
	kpis, err := r.getKpis(ctx, `WHERE k.id = $1`, kpiID)
	if err != nil {
		return nil, err
	}
	if len(kpis) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &kpis[0], nil
}

func (r *PgxKpiRepository) FindKpis(ctx context.Context, filter domain.KpiFilter) ([]domain.KpiDetails, error) {
	q := &queryArgs{}
	var conds []string
	if filter.Type != nil {
		conds = append(conds, "k.type = "+q.add(string(*filter.Type)))
	}
	if filter.IsActive != nil {
		conds = append(conds, "k.is_active = "+q.add(*filter.IsActive))
	}
	if filter.ProjectID != "" {
		conds = append(conds, "k.project_id = "+q.add(filter.ProjectID))
	}
	if filter.Search != "" {
		p := q.add(containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(k.name ILIKE %[1]s OR k.description ILIKE %[1]s)", p))
	}
	if vis := kpiVisibilitySQL(filter.Visibility, q); vis != "" {
		conds = append(conds, vis)
	}
	return r.getKpis(ctx, whereClause(conds)+" ORDER BY k.created_at DESC, k.id", q.args...)
}

func (r *PgxKpiRepository) SaveKpi(ctx context.Context, kpi domain.Kpi) error {
	query := `
		INSERT INTO kpis (
			id, name, description, type, target, unit, is_active,
			project_id, creator_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		kpi.KpiID,
		kpi.Name,
		kpi.Description,
		string(kpi.Type),
		kpi.Target,
		kpi.Unit,
		kpi.IsActive,
		kpi.ProjectID,
		kpi.CreatorID,
		kpi.CreatedAt,
		kpi.UpdatedAt,
	)
	if err != nil {
		return writeError(err, "save kpi "+kpi.KpiID, "KPI already exists", msgProjectReference)
	}
	return nil
}

func (r *PgxKpiRepository) UpdateKpi(ctx context.Context, kpiID string, patch domain.KpiPatch, now time.Time) error {
	q := &queryArgs{}
	s := setClause{q: q}
	if patch.Name.Set {
		s.set("name", patch.Name.Value)
	}
	if patch.Description.Set {
		s.set("description", patch.Description.Value)
	}
	if patch.Type.Set {
		s.set("type", string(patch.Type.Value))
	}
	if patch.Target.Set {
		s.set("target", patch.Target.Value)
	}
	if patch.Unit.Set {
		s.set("unit", patch.Unit.Value)
	}
	if patch.IsActive.Set {
		s.set("is_active", patch.IsActive.Value)
	}
	if patch.ProjectID.Set {
		s.set("project_id", patch.ProjectID.Value)
	}
	if s.empty() {
		return nil
	}
	s.set("updated_at", now)

	query := "UPDATE kpis SET " + s.String() + " WHERE id = " + q.add(kpiID)
	cmdTag, err := r.Pool.Exec(ctx, query, q.args...)
	if err != nil {
		return writeError(err, "update kpi "+kpiID, "KPI already exists", msgProjectReference)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxKpiRepository) DeleteKpi(ctx context.Context, kpiID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM kpis WHERE id = $1`, kpiID)
	if err != nil {
		return fmt.Errorf("failed to delete kpi %s: %w", kpiID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxKpiRepository) getValues(ctx context.Context, filterQuery string, args ...any) ([]domain.KpiValue, error) {
	rows, err := r.Pool.Query(ctx, kpiValueSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi values: %w", err)
	}
	valueRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.KpiValueRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect kpi value rows: %w", err)
	}
	values := make([]domain.KpiValue, len(valueRows))
	for i, row := range valueRows {
		values[i] = mapping.ToDomainKpiValue(row)
	}
	return values, nil
}

func (r *PgxKpiRepository) FindKpiValueByID(ctx context.Context, valueID string) (*domain.KpiValue, error) {
	values, err := r.getValues(ctx, `WHERE v.id = $1`, valueID)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &values[0], nil
}

func (r *PgxKpiRepository) FindKpiValues(ctx context.Context, kpiID string, limit int, after *pagination.Cursor) ([]domain.KpiValue, error) {
	q := &queryArgs{}
	conds := []string{"v.kpi_id = " + q.add(kpiID)}
	if after != nil {
		conds = append(conds, fmt.Sprintf("(v.date, v.created_at, v.id) < (%s, %s, %s)",
			q.add(after.Date), q.add(after.CreatedAt), q.add(after.ID)))
	}
	query := whereClause(conds) + " ORDER BY v.date DESC, v.created_at DESC, v.id DESC LIMIT " + q.add(limit)
	return r.getValues(ctx, query, q.args...)
}

func (r *PgxKpiRepository) SaveKpiValue(ctx context.Context, value domain.KpiValue) error {
	query := `
		INSERT INTO kpi_values (id, kpi_id, user_id, value, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		value.ValueID,
		value.KpiID,
		value.UserID,
		value.Value,
		value.Date,
		value.Notes,
		value.CreatedAt,
		value.UpdatedAt,
	)
	if err != nil {
		return writeError(err, "save kpi value "+value.ValueID, "KPI value already exists", "KPI not found")
	}
	return nil
}

func (r *PgxKpiRepository) UpdateKpiValue(ctx context.Context, valueID string, patch domain.KpiValuePatch, now time.Time) error {
	q := &queryArgs{}
	s := setClause{q: q}
	if patch.Value.Set {
		s.set("value", patch.Value.Value)
	}
	if patch.Date.Set {
		s.set("date", patch.Date.Value)
	}
	if patch.Notes.Set {
		s.set("notes", patch.Notes.Value)
	}
	if s.empty() {
		return nil
	}
	s.set("updated_at", now)

	query := "UPDATE kpi_values SET " + s.String() + " WHERE id = " + q.add(valueID)
	cmdTag, err := r.Pool.Exec(ctx, query, q.args...)
	if err != nil {
		return fmt.Errorf("failed to update kpi value %s: %w", valueID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxKpiRepository) DeleteKpiValue(ctx context.Context, valueID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM kpi_values WHERE id = $1`, valueID)
	if err != nil {
		return fmt.Errorf("failed to delete kpi value %s: %w", valueID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

