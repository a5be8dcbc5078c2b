package domain

// Envelope layout and key-derivation parameters. The sealed blob is the fixed
// concatenation salt || nonce || tag || ciphertext, base64-encoded for
// transport, so these sizes are part of the wire format and must not change.
const (
	// KeySize is the size of the master key and every derived key in bytes.
	KeySize = 32

	// SaltSize is the size of the random per-record KDF salt in bytes.
	SaltSize = 16

	// NonceSize is the AES-GCM nonce size in bytes.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16

	// KDFIterations is the PBKDF2-SHA256 iteration count. Deriving a fresh key
	// per operation is deliberately expensive; treat Seal/Unseal as blocking.
	KDFIterations = 100_000
)
