// Package domain defines core domain models and errors for envelope encryption.
package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// MasterKey is the single 32-byte symmetric secret at the root of envelope
// encryption. Every sealed record's key is derived from it plus a per-record
// salt; the master key itself is never persisted, logged, or returned in any
// response.
//
// The key is loaded exactly once at process start and passed explicitly to the
// components that need it. There is no package-level singleton; tests can
// construct distinct keys without touching process state.
type MasterKey struct {
	key []byte
}

// NewMasterKey wraps raw key material. The material must be exactly 32 bytes.
// The caller hands over ownership of the slice; Close zeroes it.
func NewMasterKey(key []byte) (*MasterKey, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}
	return &MasterKey{key: key}, nil
}

// Bytes returns the raw key material. Callers must not retain or mutate the
// returned slice.
func (m *MasterKey) Bytes() []byte {
	return m.key
}

// Close zeroes the key material. The master key is unusable afterwards.
func (m *MasterKey) Close() {
	Zero(m.key)
	m.key = nil
}

// KMSKeeper unwraps KMS-encrypted key material. *secrets.Keeper from
// gocloud.dev implements it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// LoadMasterKey decodes and validates the configured master encryption key.
//
// The encoded value is the base64 form of the raw 32-byte key. When keeper is
// non-nil the decoded bytes are treated as KMS ciphertext and unwrapped first,
// so the plaintext key never appears in the environment. The process must fail
// to start when the key is absent or malformed.
func LoadMasterKey(
	ctx context.Context,
	encoded string,
	keeper KMSKeeper,
	logger *slog.Logger,
) (*MasterKey, error) {
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyBase64, err)
	}

	if keeper != nil {
		plaintext, err := keeper.Decrypt(ctx, raw)
		Zero(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap master key with KMS: %w", err)
		}
		raw = plaintext
		logger.Info("master key unwrapped via KMS")
	}

	masterKey, err := NewMasterKey(raw)
	if err != nil {
		Zero(raw)
		return nil, err
	}

	logger.Info("master key loaded")
	return masterKey, nil
}
