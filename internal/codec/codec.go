// Package codec protects sensitive contact fields at rest. Values are
// encrypted with AES-GCM before they reach the store and decoded on every
// read path. Decoding tolerates plaintext input: records written before
// encryption was enabled, or by a deployment that never encrypts, come back
// unchanged.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// prefix marks a value as ciphertext so plaintext can be told apart.
const prefix = "enc1:"

var errCiphertextTooShort = errors.New("ciphertext too short")

type FieldCodec struct {
	aead   cipher.AEAD
	logger logrus.FieldLogger
}

// New derives a 256-bit AES key from the given secret. The secret is any
// non-empty passphrase; key stretching is a plain SHA-256 since the input
// is an operator-provisioned secret, not a user password.
func New(secret string, logger logrus.FieldLogger) (*FieldCodec, error) {
	if secret == "" {
		return nil, errors.New("codec secret is empty")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FieldCodec{aead: aead, logger: logger}, nil
}

// Encode encrypts plaintext with a fresh nonce. Empty input is returned
// empty: absent contact data stays absent.
func (c *FieldCodec) Encode(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return prefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode reverses Encode. Values without the ciphertext marker are assumed
// to be plaintext and returned as-is. A value that carries the marker but
// fails to decrypt is logged and returned raw; this never errors past the
// codec boundary.
func (c *FieldCodec) Decode(value string) string {
	if !strings.HasPrefix(value, prefix) {
		return value
	}
	plaintext, err := c.decode(value)
	if err != nil {
		c.logger.WithError(err).Warn("field decode failed, returning stored value")
		return value
	}
	return plaintext
}

func (c *FieldCodec) decode(value string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, prefix))
	if err != nil {
		return "", err
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", errCiphertextTooShort
	}
	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
