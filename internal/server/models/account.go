// Package models holds the server-side domain records.
package models

import "time"

// Account is an identity record. Email is the sole natural key and is
// stored normalized (trimmed, lowercase). PasswordHash is empty for
// accounts created through a federated provider that never set a local
// password; Provider and ProviderSubject are empty for local-only
// accounts.
type Account struct {
	ID              string
	Email           string
	PasswordHash    string
	Provider        string
	ProviderSubject string
	Active          bool
	CreatedAt       time.Time
}

// HasPassword reports whether a local password has ever been set.
func (a *Account) HasPassword() bool { return a.PasswordHash != "" }

// IsFederated reports whether the account is linked to an external
// identity provider.
func (a *Account) IsFederated() bool { return a.Provider != "" }
