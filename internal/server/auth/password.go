package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes plaintext passwords and verifies candidates
// against stored hashes. Implementations must salt every hash, so two
// hashes of the same plaintext are never equal.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. The salt is
// generated per call and embedded in the resulting hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given cost. Costs outside
// bcrypt's valid range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares in constant time using the salt embedded in hash.
// Malformed hashes verify as false rather than erroring.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
