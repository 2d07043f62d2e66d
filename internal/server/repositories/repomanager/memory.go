package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkit/internal/dbx"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/accounts"
)

// MemoryRepositoryManager serves a single shared in-memory accounts
// repository, ignoring the DBTX argument. It backs tests and
// development runs without PostgreSQL.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{accounts: accounts.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return m.accounts
}

// RunMigrations is a no-op for the in-memory backend.
func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
