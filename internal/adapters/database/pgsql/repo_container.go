package pgsql

import (
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		ProjectRepo: newPgxProjectRepository(dbPool),
		KpiRepo:     newPgxKpiRepository(dbPool),
		Health:      &BaseRepository{Pool: dbPool},
	}
}
