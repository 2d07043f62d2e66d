// Package auth implements the credential primitives of the server:
// signed, time-bounded tokens (HS256 JWTs) and salted password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind tags a token as an access or a refresh token. The kind is
// embedded as a claim so one kind cannot be presented where the other is
// expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the claim set carried by every issued token: the standard
// registered claims plus the account identifier and the token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"uid"`
	Email  string    `json:"email,omitempty"`
	Kind   TokenKind `json:"kind"`
}

// Issuer creates and verifies tokens with a process-wide HMAC secret.
// The clock is injectable so expiry behaviour is testable without real
// delays; NewIssuer wires in time.Now.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret []byte) *Issuer {
	return NewIssuerWithClock(secret, time.Now)
}

func NewIssuerWithClock(secret []byte, now func() time.Time) *Issuer {
	return &Issuer{secret: secret, now: now}
}

// Issue signs a token for userID with issued-at set to the current
// instant and expiry at issued-at + ttl.
func (i *Issuer) Issue(userID, email string, ttl time.Duration, kind TokenKind) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Kind:   kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning its claims.
//
// A well-formed token past its expiry yields common.ErrTokenExpired so
// callers can offer a refresh path; every other failure (bad signature,
// malformed structure, missing or unknown kind) collapses to
// common.ErrInvalidToken. The expiry boundary is inclusive: a token
// whose expiry equals the current instant is already expired.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	switch claims.Kind {
	case TokenKindAccess, TokenKindRefresh:
	default:
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
