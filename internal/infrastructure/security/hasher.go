package security

import (
	"fmt"
	"strings"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
)

const (
	AlgorithmBcrypt = "bcrypt"
	AlgorithmArgon2 = "argon2id"
)

// Hasher hashes new passwords with one algorithm and verifies stored hashes
// of either supported format, so switching algorithms keeps old accounts working.
type Hasher struct {
	primary ports.PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

// NewHasher builds a Hasher whose new hashes use algorithm ("bcrypt" or "argon2id").
func NewHasher(algorithm string, bcryptCost int, argon2Params Argon2Params) (*Hasher, error) {
	h := &Hasher{
		bcrypt: NewBcryptHasher(bcryptCost),
		argon2: NewArgon2Hasher(argon2Params),
	}
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		h.primary = h.bcrypt
	case AlgorithmArgon2, "argon2":
		h.primary = h.argon2
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}
	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *Hasher) Verify(password, hash string) bool {
	if strings.HasPrefix(hash, "$argon2id$") {
		return h.argon2.Verify(password, hash)
	}
	return h.bcrypt.Verify(password, hash)
}

var (
	_ ports.PasswordHasher = (*Hasher)(nil)
	_ ports.PasswordHasher = (*BcryptHasher)(nil)
	_ ports.PasswordHasher = (*Argon2Hasher)(nil)
)
