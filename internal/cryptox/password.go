// Package cryptox holds the password hashing used by the registry.
// Passwords are stretched with argon2id and a per-user random salt; only the
// salt and the derived key are ever kept.
package cryptox

import (
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/userregistry/internal/common"
	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost settings.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltSize  int
}

// DefaultParams mirrors the cost used for master keys elsewhere:
// one pass over 64 MiB with four lanes, 32-byte output.
func DefaultParams() Params {
	return Params{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
		KeyLen:    32,
		SaltSize:  16,
	}
}

// PasswordHasher derives and checks salted argon2id password hashes.
type PasswordHasher struct {
	params Params
}

// NewPasswordHasher returns a hasher for p. Zero cost values are rejected.
func NewPasswordHasher(p Params) (*PasswordHasher, error) {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 || p.KeyLen == 0 || p.SaltSize <= 0 {
		return nil, fmt.Errorf("argon2 params %+v: %w", p, common.ErrorInvalidConfig)
	}
	return &PasswordHasher{params: p}, nil
}

// DeriveKey stretches password with salt using the hasher's parameters.
func (h *PasswordHasher) DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)
}

// Hash generates a fresh salt and returns it with the derived key.
func (h *PasswordHasher) Hash(password []byte) (salt, key []byte, err error) {
	salt = common.GenerateRandByteArray(h.params.SaltSize)
	return salt, h.DeriveKey(password, salt), nil
}

// Verify reports whether password matches key under salt.
// The comparison runs in constant time.
func (h *PasswordHasher) Verify(password, salt, key []byte) bool {
	candidate := h.DeriveKey(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, key) == 1
}
