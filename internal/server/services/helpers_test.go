package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkit/internal/dbx"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/config"
	"github.com/dmitrijs2005/authkit/internal/server/models"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/accounts"
	"golang.org/x/crypto/bcrypt"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	cfg.SessionValidityDuration = time.Hour
	return cfg
}

func testHasher() auth.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

// countingRepo wraps a real repository and counts Save calls; findErr,
// when set, is returned from FindByEmail to simulate storage failures.
type countingRepo struct {
	inner     accounts.Repository
	saveCalls int
	findErr   error
	saveErr   error
}

func (r *countingRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.inner.FindByEmail(ctx, email)
}

func (r *countingRepo) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	return r.inner.Save(ctx, account)
}

// fakeManager vends a fixed repository regardless of the DBTX handle.
type fakeManager struct {
	repo accounts.Repository
}

func (m *fakeManager) Accounts(db dbx.DBTX) accounts.Repository     { return m.repo }
func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func newCountingManager() (*fakeManager, *countingRepo) {
	repo := &countingRepo{inner: accounts.NewMemoryRepository()}
	return &fakeManager{repo: repo}, repo
}
