package token

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

// deriveKey stretches the shared secret into an independent signing key per
// purpose, so an access token can never verify as a confirmation code.
func deriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("token: empty secret")
	}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("yamdb/"+purpose))
	key := make([]byte, keySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("token: derive %s key: %w", purpose, err)
	}
	return key, nil
}
