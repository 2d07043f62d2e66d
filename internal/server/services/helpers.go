// Package services contains the server-side business logic: account
// registration, credential login, access-token refresh, and federated
// identity linking. Services are stateless request-scoped orchestrators
// over the repositories, the session store, the hasher, and the token
// issuer.
package services

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/authkit/internal/common"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// normalizeEmail trims and lowercases the address. Email is the sole
// natural key of an account, so every lookup and save goes through this.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail returns common.ErrorValidation for blank or malformed
// addresses, before any storage lookup happens.
func validateEmail(email string) error {
	if email == "" || !emailRe.MatchString(email) {
		return common.ErrorValidation
	}
	return nil
}
