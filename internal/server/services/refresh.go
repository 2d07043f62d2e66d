package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/config"
)

// RefreshService rotates a refresh token into a new access token.
// The presented refresh token itself is not invalidated: tokens here are
// stateless and there is no revocation store.
type RefreshService struct {
	issuer    *auth.Issuer
	accessTTL time.Duration
}

func NewRefreshService(issuer *auth.Issuer, cfg *config.Config) *RefreshService {
	return &RefreshService{issuer: issuer, accessTTL: cfg.AccessTokenValidityDuration}
}

// Refresh verifies that refreshToken is well-formed, unexpired, and of
// refresh kind, then mints a new access token for the same account.
// An access token presented here fails with common.ErrInvalidToken; an
// expired refresh token with common.ErrTokenExpired.
func (s *RefreshService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Kind != auth.TokenKindRefresh {
		return "", common.ErrInvalidToken
	}

	access, err := s.issuer.Issue(claims.UserID, claims.Email, s.accessTTL, auth.TokenKindAccess)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}
