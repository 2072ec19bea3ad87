package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, so a Cyrillic
// password reaches it at 36 characters.
const MaxPasswordBytes = 72

type Hasher struct {
	cost int
	// dummy is compared against when no stored hash exists, so an unknown
	// login costs the same as a wrong password.
	dummy []byte
}

func NewHasher(cost int) (*Hasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("catalog-dummy-credential"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Hasher{cost: cost, dummy: dummy}, nil
}

func (h *Hasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether raw matches hash. An empty hash is compared against
// the dummy hash and always reports false.
func (h *Hasher) Matches(hash, raw string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(raw))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
