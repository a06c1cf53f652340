package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Ping checks that the database is reachable.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// writeError translates constraint violations into application errors. conflictMsg and refMsg are the
// caller-facing messages for unique and foreign key violations.
func writeError(err error, op, conflictMsg, refMsg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewAppError(apperrors.ErrConflict, conflictMsg, err)
		case pgForeignKeyViolation:
			return apperrors.NewAppError(apperrors.ErrInvalidReference, refMsg, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// queryArgs collects positional arguments and hands out their placeholders.
type queryArgs struct {
	args []any
}

func (q *queryArgs) add(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// whereClause joins conditions with AND. No conditions yield an empty clause.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// setClause builds the SET list of a partial update.
type setClause struct {
	q     *queryArgs
	parts []string
}

func (s *setClause) set(column string, value any) {
	s.parts = append(s.parts, column+" = "+s.q.add(value))
}

func (s *setClause) String() string {
	return strings.Join(s.parts, ", ")
}

func (s *setClause) empty() bool {
	return len(s.parts) == 0
}

func containsPattern(search string) string {
	return "%" + search + "%"
}
