package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ruralpay/ledger/internal/config"
	"golang.org/x/crypto/argon2"
)

// PasswordHasher turns passwords into opaque argon2id credentials stored
// as base64(salt)$base64(hash).
type PasswordHasher struct {
	params config.Argon2Config
}

func NewPasswordHasher(params config.Argon2Config) *PasswordHasher {
	if params.Time == 0 {
		params.Time = 1
	}
	if params.Memory == 0 {
		params.Memory = 64 * 1024
	}
	if params.Threads == 0 {
		params.Threads = 4
	}
	if params.KeyLength == 0 {
		params.KeyLength = 32
	}
	if params.SaltLength <= 0 {
		params.SaltLength = 16
	}
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := h.derive(password, salt)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (h *PasswordHasher) Verify(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(hash, h.derive(password, salt)) == 1
}

func (h *PasswordHasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLength)
}
