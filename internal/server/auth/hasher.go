// Package auth provides the authentication primitives of the server:
// password hashing with scrypt and signed access tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// ScryptParams holds the scrypt cost parameters and output sizes. The values
// are configuration, not constants, so deployments can retune them without a
// code change.
type ScryptParams struct {
	N       int // CPU/memory cost factor, must be a power of two
	R       int // block size
	P       int // parallelization
	SaltLen int // random salt length in bytes
	KeyLen  int // derived key length in bytes
}

// DefaultScryptParams returns the parameters used when configuration does not
// override them (N=16384, r=8, p=1, 32-byte salt, 64-byte key).
func DefaultScryptParams() ScryptParams {
	return ScryptParams{N: 16384, R: 8, P: 1, SaltLen: 32, KeyLen: 64}
}

// Hasher derives and verifies salted scrypt password records. A record is
// serialized as hex(salt) + ":" + hex(derivedKey).
type Hasher struct {
	params ScryptParams
}

func NewHasher(params ScryptParams) *Hasher {
	return &Hasher{params: params}
}

// Hash generates a random salt and derives a key from the password.
// Randomness or KDF failures are fatal for the operation, there is no retry.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, h.params.N, h.params.R, h.params.P, h.params.KeyLen)
	if err != nil {
		return "", fmt.Errorf("error deriving key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// Verify recomputes the derived key for the password using the salt stored in
// record and compares it to the stored key in constant time. A malformed
// record is reported as a mismatch, not an error; only a KDF failure is an
// error.
func (h *Hasher) Verify(password, record string) (bool, error) {
	saltHex, keyHex, ok := strings.Cut(record, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false, nil
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, nil
	}
	stored, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, nil
	}
	if len(stored) == 0 {
		return false, nil
	}

	key, err := scrypt.Key([]byte(password), salt, h.params.N, h.params.R, h.params.P, len(stored))
	if err != nil {
		return false, fmt.Errorf("error deriving key: %w", err)
	}

	return subtle.ConstantTimeCompare(key, stored) == 1, nil
}
