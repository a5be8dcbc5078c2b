// Package service implements envelope encryption for sealing account secrets.
// A fresh symmetric key is derived from the master key and a random per-record
// salt on every operation, so no derived key is ever stored or reused.
package service

// AEAD performs authenticated symmetric encryption with an externally supplied
// key and nonce. The tag is returned separately because the sealed-blob layout
// places it before the ciphertext.
type AEAD interface {
	// Seal encrypts plaintext under (key, nonce) and returns the ciphertext
	// and the 16-byte authentication tag.
	Seal(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error)

	// Open authenticates and decrypts ciphertext. It returns an error on any
	// tag mismatch and never partial plaintext.
	Open(key, nonce, ciphertext, tag []byte) ([]byte, error)
}

// Envelope seals and unseals secrets under keys derived from the master key.
//
// Seal and Unseal pay the full KDF cost on every call; they are CPU-bound and
// must be treated as blocking operations.
type Envelope interface {
	// Seal encrypts plaintext and returns the base64-encoded blob
	// salt || nonce || tag || ciphertext. Fails on empty plaintext.
	Seal(plaintext []byte) (string, error)

	// Unseal reverses Seal. Fails with a decryption error on malformed or
	// tampered input.
	Unseal(sealed string) ([]byte, error)

	// Hash returns the hex-encoded SHA-256 digest of text, for one-way
	// comparisons such as token matching. Independent of the master key.
	Hash(text string) string

	// ConstantTimeCompare reports whether two digests are equal in time
	// independent of where they first differ.
	ConstantTimeCompare(a, b string) bool

	// GenerateToken returns a URL-safe random token with length bytes of
	// entropy. For opaque identifiers only, never for key material.
	GenerateToken(length int) (string, error)
}
