package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/server/models"
)

// MemoryRepository is a map-backed Repository used in tests and
// single-node development runs. The duplicate-email check and the
// insert happen under one mutex, so concurrent registrations with the
// same email cannot both succeed.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*models.Account // keyed by ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.accounts {
		if existing.Email == account.Email && id != account.ID {
			return nil, common.ErrorEmailExists
		}
	}

	copied := *account
	if existing, ok := r.accounts[account.ID]; ok {
		copied.CreatedAt = existing.CreatedAt
	} else if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.accounts[account.ID] = &copied

	result := copied
	return &result, nil
}
