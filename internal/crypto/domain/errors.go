package domain

import (
	"github.com/syteworks/stellar-custody/internal/errors"
)

// Crypto-specific error definitions.
var (
	// ErrMasterKeyNotSet indicates MASTER_ENCRYPTION_KEY is not configured.
	ErrMasterKeyNotSet = errors.New("MASTER_ENCRYPTION_KEY is not set")

	// ErrInvalidMasterKeyBase64 indicates the master key is not valid base64.
	ErrInvalidMasterKeyBase64 = errors.New("master key is not valid base64")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrEncryption indicates a Seal operation failed. The wrapped cause is
	// logged but never returned to clients.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption indicates an Unseal operation failed, either because the
	// blob is malformed or because authentication of the ciphertext failed.
	ErrDecryption = errors.New("decryption failed")
)
