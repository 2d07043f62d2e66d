package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/config"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkit/internal/server/sessions"
)

// LoginResult is what a successful login hands back: the token pair and
// the identifier of the freshly created session.
type LoginResult struct {
	TokenPair
	SessionID string
}

// LoginService authenticates credentials, issues the token pair, and
// creates the session record.
type LoginService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	store      sessions.Store
	hasher     auth.PasswordHasher
	issuer     *auth.Issuer
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessionTTL time.Duration
}

func NewLoginService(db *sql.DB, repos repomanager.RepositoryManager, store sessions.Store, hasher auth.PasswordHasher, issuer *auth.Issuer, cfg *config.Config) *LoginService {
	return &LoginService{
		db:         db,
		repos:      repos,
		store:      store,
		hasher:     hasher,
		issuer:     issuer,
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
		sessionTTL: cfg.SessionValidityDuration,
	}
}

// Login verifies the password for the account under email and, on
// success, returns an access/refresh token pair bound to the account ID
// plus a new session. An unknown email, a wrong password, and an
// account that never set a password all fail with the same
// common.ErrorInvalidCredentials, so callers cannot learn which
// accounts exist.
func (s *LoginService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	repo := s.repos.Accounts(s.db)
	account, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if !account.HasPassword() || !s.hasher.Verify(password, account.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	access, err := s.issuer.Issue(account.ID, account.Email, s.accessTTL, auth.TokenKindAccess)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.issuer.Issue(account.ID, account.Email, s.refreshTTL, auth.TokenKindRefresh)
	if err != nil {
		return nil, common.ErrorInternal
	}

	sessionID, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	claims := map[string]string{"uid": account.ID, "email": account.Email}
	if err := s.store.Save(ctx, sessionID, claims, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("error saving session: %w", err)
	}

	return &LoginResult{
		TokenPair: TokenPair{AccessToken: access, RefreshToken: refresh},
		SessionID: sessionID,
	}, nil
}

// Logout drops the session immediately regardless of its remaining TTL.
func (s *LoginService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("error invalidating session: %w", err)
	}
	return nil
}
