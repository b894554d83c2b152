// Package credentials isolates password storage and comparison behind a
// small interface so the storage scheme can be swapped without touching
// handlers or services.
package credentials

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Scheme hashes passwords for storage and verifies login attempts against
// the stored value.
type Scheme interface {
	Name() string
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// ForName returns the scheme registered under the given config name.
func ForName(name string) (Scheme, error) {
	switch name {
	case "plain", "":
		return Plaintext{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

// Plaintext stores passwords verbatim and compares them byte-exact and
// case-sensitive. This mirrors the legacy system and is deliberately left
// as the default; it is not safe for real deployments.
type Plaintext struct{}

func (Plaintext) Name() string { return "plain" }

func (Plaintext) Hash(password string) (string, error) {
	return password, nil
}

func (Plaintext) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Bcrypt stores bcrypt hashes. Selectable via PASSWORD_SCHEME=bcrypt.
type Bcrypt struct {
	Cost int
}

func (Bcrypt) Name() string { return "bcrypt" }

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (Bcrypt) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
