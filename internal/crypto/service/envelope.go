package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
)

// envelopeService implements Envelope with PBKDF2-SHA256 key derivation and
// AES-256-GCM authenticated encryption.
//
// Every Seal draws a fresh salt and nonce, so sealing identical plaintext
// twice never yields identical blobs and the same derived key is never reused
// with the same nonce. Deriving the key from (master key, salt) per call,
// instead of keeping a table of derived keys, trades KDF latency for not
// having long-lived symmetric keys in memory; that trade-off is intentional.
type envelopeService struct {
	masterKey *cryptoDomain.MasterKey
	aead      AEAD
}

// NewEnvelope creates an Envelope bound to the given master key.
func NewEnvelope(masterKey *cryptoDomain.MasterKey, aead AEAD) Envelope {
	return &envelopeService{
		masterKey: masterKey,
		aead:      aead,
	}
}

// Seal encrypts plaintext and returns the base64-encoded blob
// salt(16) || nonce(12) || tag(16) || ciphertext.
func (e *envelopeService) Seal(plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: plaintext cannot be empty", cryptoDomain.ErrEncryption)
	}
	if e.masterKey == nil || len(e.masterKey.Bytes()) == 0 {
		return "", fmt.Errorf("%w: master key is not available", cryptoDomain.ErrEncryption)
	}

	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: failed to generate salt: %v", cryptoDomain.ErrEncryption, err)
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", cryptoDomain.ErrEncryption, err)
	}

	key := e.deriveKey(salt)
	defer cryptoDomain.Zero(key)

	ciphertext, tag, err := e.aead.Seal(key, nonce, plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	blob := make([]byte, 0, len(salt)+len(nonce)+len(tag)+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Unseal parses the blob by fixed offsets, re-derives the key from the
// embedded salt, and authenticates before returning any plaintext.
func (e *envelopeService) Unseal(sealed string) ([]byte, error) {
	if sealed == "" {
		return nil, fmt.Errorf("%w: sealed data cannot be empty", cryptoDomain.ErrDecryption)
	}
	if e.masterKey == nil || len(e.masterKey.Bytes()) == 0 {
		return nil, fmt.Errorf("%w: master key is not available", cryptoDomain.ErrDecryption)
	}

	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", cryptoDomain.ErrDecryption, err)
	}

	headerSize := cryptoDomain.SaltSize + cryptoDomain.NonceSize + cryptoDomain.TagSize
	if len(blob) <= headerSize {
		return nil, fmt.Errorf("%w: sealed blob is too short", cryptoDomain.ErrDecryption)
	}

	salt := blob[:cryptoDomain.SaltSize]
	nonce := blob[cryptoDomain.SaltSize : cryptoDomain.SaltSize+cryptoDomain.NonceSize]
	tag := blob[cryptoDomain.SaltSize+cryptoDomain.NonceSize : headerSize]
	ciphertext := blob[headerSize:]

	key := e.deriveKey(salt)
	defer cryptoDomain.Zero(key)

	plaintext, err := e.aead.Open(key, nonce, ciphertext, tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryption, err)
	}

	return plaintext, nil
}

// deriveKey stretches the master key with the per-record salt.
func (e *envelopeService) deriveKey(salt []byte) []byte {
	return pbkdf2.Key(
		e.masterKey.Bytes(),
		salt,
		cryptoDomain.KDFIterations,
		cryptoDomain.KeySize,
		sha256.New,
	)
}
