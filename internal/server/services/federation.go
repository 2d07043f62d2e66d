package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/dbx"
	"github.com/dmitrijs2005/authkit/internal/server/models"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FederationService reconciles externally verified identities with
// local accounts. The OAuth/OIDC handshake happens upstream; this
// service only consumes the resulting claims.
type FederationService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewFederationService(db *sql.DB, repos repomanager.RepositoryManager) *FederationService {
	return &FederationService{db: db, repos: repos}
}

// Authenticate links identity to the account under its email, creating
// the account when absent. Repeated calls with the same identity
// converge to the same account. An account already linked to a
// different provider or subject is not silently relinked; that fails
// with common.ErrorValidation.
//
// The lookup and the save run in one transaction so two concurrent
// calls for the same email cannot produce divergent links.
func (s *FederationService) Authenticate(ctx context.Context, identity models.ProviderIdentity) (*models.Account, error) {
	if identity.Provider == "" || identity.Subject == "" {
		return nil, common.ErrorValidation
	}
	email := normalizeEmail(identity.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var account *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Accounts(tx)

		existing, err := repo.FindByEmail(ctx, email)
		if errors.Is(err, common.ErrorNotFound) {
			// no local account yet: create one with no password hash
			created, saveErr := repo.Save(ctx, &models.Account{
				ID:              uuid.NewString(),
				Email:           email,
				Provider:        identity.Provider,
				ProviderSubject: identity.Subject,
				Active:          true,
			})
			if saveErr == nil {
				account = created
				return nil
			}
			if !errors.Is(saveErr, common.ErrorEmailExists) {
				return saveErr
			}
			// lost the insert race with a concurrent login for the same
			// email; the row exists now, reconcile against it instead
			existing, err = repo.FindByEmail(ctx, email)
		}
		if err != nil {
			return fmt.Errorf("error looking up account: %w", err)
		}

		if existing.IsFederated() {
			if existing.Provider == identity.Provider && existing.ProviderSubject == identity.Subject {
				account = existing
				return nil
			}
			return common.ErrorValidation
		}

		// local account with no federation link yet: attach it
		existing.Provider = identity.Provider
		existing.ProviderSubject = identity.Subject
		account, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}
