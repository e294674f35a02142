// Package password implements one-way password hashing and verification.
package password

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the adaptive cost factor used when none is configured.
const DefaultCost = 11

// Hasher hashes and verifies passwords with bcrypt.
// The zero value uses DefaultCost.
type Hasher struct {
	Cost int
}

// New creates a Hasher with the given adaptive cost factor.
// A cost of 0 falls back to DefaultCost.
func New(cost int) *Hasher {
	if cost == 0 {
		cost = DefaultCost
	}

	return &Hasher{Cost: cost}
}

// Hash produces a self-describing salted digest of the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(digest), nil
}

// Verify compares the plaintext against a stored digest.
// A mismatch reports false with no error. A malformed stored digest is a
// configuration error and is reported as such, not as a mismatch.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, errors.Wrap(err, "malformed password digest")
}
