package models

// ProviderIdentity is a normalized external identity returned by an
// OAuth/OIDC provider after the handshake has been verified upstream.
// It carries facts only, no decisions.
type ProviderIdentity struct {
	Provider string // e.g. "google", "github"
	Subject  string // provider-scoped unique user identifier (sub claim)
	Email    string // verified email asserted by the provider
}
