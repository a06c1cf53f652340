package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

const userSelectQuery = `SELECT ` + userColumns + ` FROM users`

func (r *PgxUserRepository) getUsers(ctx context.Context, filterQuery string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, filterQuery string, args ...any) (*domain.User, error) {
	users, err := r.getUsers(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &users[0], nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, ` WHERE id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, ` WHERE LOWER(email) = $1`, domain.NormalizeEmail(email))
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	q := &queryArgs{}
	var conds []string
	if filter.Role != nil {
		conds = append(conds, "role = "+q.add(string(*filter.Role)))
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = "+q.add(*filter.IsActive))
	}
	if filter.Search != "" {
		p := q.add(containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR email ILIKE %[1]s)", p))
	}

	query := whereClause(conds) + " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT " + q.add(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + q.add(filter.Offset)
	}
	return r.getUsers(ctx, query, q.args...)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		string(user.Role),
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return writeError(err, "save user "+user.UserID, "User with this email already exists", "")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	q := &queryArgs{}
	s := setClause{q: q}
	if patch.Email.Set {
		s.set("email", domain.NormalizeEmail(patch.Email.Value))
	}
	if patch.FirstName.Set {
		s.set("first_name", patch.FirstName.Value)
	}
	if patch.LastName.Set {
		s.set("last_name", patch.LastName.Value)
	}
	if patch.Role.Set {
		s.set("role", string(patch.Role.Value))
	}
	if patch.IsActive.Set {
		s.set("is_active", patch.IsActive.Value)
	}
	if s.empty() {
		return r.FindUserByID(ctx, userID)
	}
	s.set("updated_at", now)

	query := "UPDATE users SET " + s.String() + " WHERE id = " + q.add(userID) + " RETURNING " + userColumns
	rows, err := r.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, writeError(err, "update user "+userID, "User with this email already exists", "")
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, writeError(err, "update user "+userID, "User with this email already exists", "")
	}
	return &user, nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password of user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
