package session

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	KeyPurposeToken = "leave-planner session token"
	KeyPurposeCSRF  = "leave-planner csrf"
)

// DeriveKey expands the configured secret into a 32-byte key for one
// purpose, so the cookie signature and the CSRF token never share a key.
func DeriveKey(secret, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}
	return key, nil
}
