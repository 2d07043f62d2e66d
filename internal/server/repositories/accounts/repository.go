// Package accounts defines the account repository contract and its
// PostgreSQL and in-memory implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/authkit/internal/server/models"
)

// Repository is the storage contract for account records.
//
// FindByEmail returns common.ErrorNotFound when no account matches.
// Save upserts by account ID; the storage layer enforces email
// uniqueness, so concurrent saves of the same email cannot both
// succeed; the loser gets common.ErrorEmailExists. Any other failure
// is propagated as an opaque wrapped storage error.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
}
