package service

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// The cipher is stateless: the key is passed per call because envelope
// encryption derives a fresh key for every record. Instances are safe for
// concurrent use from multiple goroutines.
type AESGCMCipher struct{}

// NewAESGCM creates a new AES-256-GCM cipher instance.
func NewAESGCM() *AESGCMCipher {
	return &AESGCMCipher{}
}

// Seal encrypts plaintext under (key, nonce) and returns the ciphertext and
// the authentication tag separately. The key must be exactly 32 bytes and the
// nonce exactly 12 bytes.
func (a *AESGCMCipher) Seal(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := a.newAEAD(key, nonce)
	if err != nil {
		return nil, nil, err
	}

	// GCM appends the tag to the ciphertext; split it off so the caller
	// controls the blob layout.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - cryptoDomain.TagSize
	return sealed[:split], sealed[split:], nil
}

// Open authenticates and decrypts ciphertext with its detached tag. Any
// modification of the ciphertext, tag, or nonce causes an error.
func (a *AESGCMCipher) Open(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	aead, err := a.newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// newAEAD validates sizes and builds the GCM instance.
func (a *AESGCMCipher) newAEAD(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, errors.New("key must be exactly 32 bytes")
	}
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, errors.New("nonce must be exactly 12 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
