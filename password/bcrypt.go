package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit. Input beyond it is ignored by
// the algorithm, so both Hash and Verify truncate explicitly to keep the two
// operations consistent for long passwords.
const maxPasswordBytes = 72

// Config defines a public type used by goIdentity APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Cost int
}

// Bcrypt hashes and verifies passwords using the bcrypt KDF. The produced
// digest embeds its own salt and cost parameters, so verification needs no
// side channel.
type Bcrypt struct {
	cost int
}

// NewBcrypt validates cfg and returns a hasher. A zero cost selects
// bcrypt.DefaultCost.
func NewBcrypt(cfg Config) (*Bcrypt, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost outside supported bounds")
	}

	return &Bcrypt{cost: cost}, nil
}

// Hash produces a salted one-way digest of password. The digest is never
// invertible and never contains the plaintext.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	digest, err := bcrypt.GenerateFromPassword(truncate(password), b.cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify reports whether password matches digest. The comparison is
// constant time relative to digest structure. A malformed digest yields
// false rather than an error: to the caller an unparseable stored digest is
// indistinguishable from a wrong password.
func (b *Bcrypt) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), truncate(password))
	return err == nil
}

func truncate(password string) []byte {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return raw
}
