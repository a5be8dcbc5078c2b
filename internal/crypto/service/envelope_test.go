package service

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestEnvelope(t *testing.T) Envelope {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	masterKey, err := cryptoDomain.NewMasterKey(key)
	require.NoError(t, err)

	return NewEnvelope(masterKey, NewAESGCM())
}

func TestEnvelopeSealUnsealRoundTrip(t *testing.T) {
	envelope := newTestEnvelope(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"short secret", "SBSEED123"},
		{"unicode", "héllo wörld 日本語"},
		{"long secret", strings.Repeat("a", 1000)},
		{"binary-ish", "\x00\x01\x02\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := envelope.Seal([]byte(tt.plaintext))
			require.NoError(t, err)

			plaintext, err := envelope.Unseal(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(plaintext))
		})
	}
}

func TestEnvelopeSealIsNonDeterministic(t *testing.T) {
	envelope := newTestEnvelope(t)

	first, err := envelope.Seal([]byte("same plaintext"))
	require.NoError(t, err)
	second, err := envelope.Seal([]byte("same plaintext"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEnvelopeSealBlobLayout(t *testing.T) {
	envelope := newTestEnvelope(t)

	plaintext := []byte("layout check")
	sealed, err := envelope.Seal(plaintext)
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	headerSize := cryptoDomain.SaltSize + cryptoDomain.NonceSize + cryptoDomain.TagSize
	assert.Equal(t, headerSize+len(plaintext), len(blob))
}

func TestEnvelopeSealEmptyPlaintext(t *testing.T) {
	envelope := newTestEnvelope(t)

	_, err := envelope.Seal(nil)
	assert.ErrorIs(t, err, cryptoDomain.ErrEncryption)
}

func TestEnvelopeUnsealRejectsTampering(t *testing.T) {
	envelope := newTestEnvelope(t)

	sealed, err := envelope.Seal([]byte("tamper target"))
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	// Flip one byte in every region of the blob; each must fail authentication.
	headerSize := cryptoDomain.SaltSize + cryptoDomain.NonceSize + cryptoDomain.TagSize
	offsets := map[string]int{
		"salt":       0,
		"nonce":      cryptoDomain.SaltSize,
		"tag":        cryptoDomain.SaltSize + cryptoDomain.NonceSize,
		"ciphertext": headerSize,
	}

	for region, offset := range offsets {
		t.Run(region, func(t *testing.T) {
			tampered := make([]byte, len(blob))
			copy(tampered, blob)
			tampered[offset] ^= 0x01

			_, err := envelope.Unseal(base64.StdEncoding.EncodeToString(tampered))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryption)
		})
	}
}

func TestEnvelopeUnsealMalformedInput(t *testing.T) {
	envelope := newTestEnvelope(t)

	tests := []struct {
		name   string
		sealed string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"too short", base64.StdEncoding.EncodeToString(make([]byte, 10))},
		{"header only", base64.StdEncoding.EncodeToString(make([]byte, cryptoDomain.SaltSize+cryptoDomain.NonceSize+cryptoDomain.TagSize))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := envelope.Unseal(tt.sealed)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryption)
		})
	}
}

func TestEnvelopeUnsealWrongMasterKey(t *testing.T) {
	envelope := newTestEnvelope(t)
	other := newTestEnvelope(t)

	sealed, err := envelope.Seal([]byte("bound to one key"))
	require.NoError(t, err)

	_, err = other.Unseal(sealed)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryption)
}

func TestAESGCMKeyAndNonceSizes(t *testing.T) {
	cipher := NewAESGCM()

	key := make([]byte, cryptoDomain.KeySize)
	nonce := make([]byte, cryptoDomain.NonceSize)

	_, _, err := cipher.Seal(key[:16], nonce, []byte("x"))
	assert.Error(t, err)

	_, _, err = cipher.Seal(key, nonce[:8], []byte("x"))
	assert.Error(t, err)

	ciphertext, tag, err := cipher.Seal(key, nonce, []byte("x"))
	require.NoError(t, err)
	assert.Len(t, tag, cryptoDomain.TagSize)
	assert.Len(t, ciphertext, 1)
}
