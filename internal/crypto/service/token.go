package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/syteworks/stellar-custody/internal/errors"
)

// Hash returns the hex-encoded SHA-256 digest of text. The digest does not
// depend on the master key, so it stays stable across key changes.
func (e *envelopeService) Hash(text string) string {
	digest := sha256.Sum256([]byte(text))
	return hex.EncodeToString(digest[:])
}

// ConstantTimeCompare compares two digests without leaking, through timing,
// the position of the first differing byte.
func (e *envelopeService) ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateToken returns a URL-safe base64 token carrying length bytes of
// entropy.
func (e *envelopeService) GenerateToken(length int) (string, error) {
	if length <= 0 {
		return "", apperrors.New("token length must be positive")
	}

	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}

	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}
