package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/models"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RegistrationService creates local accounts, rejecting duplicates.
type RegistrationService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher auth.PasswordHasher
}

func NewRegistrationService(db *sql.DB, repos repomanager.RepositoryManager, hasher auth.PasswordHasher) *RegistrationService {
	return &RegistrationService{db: db, repos: repos, hasher: hasher}
}

// Register validates the input, checks for an existing account under the
// normalized email, and persists a new account with a salted hash of the
// password. The repository Save runs at most once per successful call.
func (s *RegistrationService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repos.Accounts(s.db)

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorEmailExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	saved, err := repo.Save(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			// lost the race with a concurrent registration
			return nil, common.ErrorEmailExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return saved, nil
}
