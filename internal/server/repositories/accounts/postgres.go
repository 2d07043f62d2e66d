package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/dbx"
	"github.com/dmitrijs2005/authkit/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByEmail looks up an account by its normalized email.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, provider, provider_subject, active, created_at
		FROM accounts
		WHERE email = $1
	`
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.Provider, &account.ProviderSubject, &account.Active, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// Save inserts the account or, when the ID already exists, updates it.
// A unique violation on the email index surfaces as
// common.ErrorEmailExists.
func (r *PostgresRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (id, email, password_hash, provider, provider_subject, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    password_hash = EXCLUDED.password_hash,
		    provider = EXCLUDED.provider,
		    provider_subject = EXCLUDED.provider_subject,
		    active = EXCLUDED.active
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.PasswordHash,
		account.Provider, account.ProviderSubject, account.Active,
	).Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorEmailExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
