package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BillRepo:     newPgxBillRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
