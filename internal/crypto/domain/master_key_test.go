package domain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewMasterKey(t *testing.T) {
	key := randomKey(t)
	masterKey, err := NewMasterKey(key)
	require.NoError(t, err)
	assert.Equal(t, key, masterKey.Bytes())
}

func TestNewMasterKeyWrongSize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := NewMasterKey(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	}
}

func TestMasterKeyClose(t *testing.T) {
	key := randomKey(t)
	masterKey, err := NewMasterKey(key)
	require.NoError(t, err)

	masterKey.Close()
	assert.Nil(t, masterKey.Bytes())

	// The original slice was zeroed, not just released.
	for _, b := range key {
		assert.Zero(t, b)
	}
}

func TestLoadMasterKey(t *testing.T) {
	key := randomKey(t)
	encoded := base64.StdEncoding.EncodeToString(key)

	masterKey, err := LoadMasterKey(context.Background(), encoded, nil, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, key, masterKey.Bytes())
}

func TestLoadMasterKeyNotSet(t *testing.T) {
	_, err := LoadMasterKey(context.Background(), "", nil, discardLogger())
	assert.ErrorIs(t, err, ErrMasterKeyNotSet)
}

func TestLoadMasterKeyInvalidBase64(t *testing.T) {
	_, err := LoadMasterKey(context.Background(), "!!!not-base64!!!", nil, discardLogger())
	assert.ErrorIs(t, err, ErrInvalidMasterKeyBase64)
}

func TestLoadMasterKeyWrongLength(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(make([]byte, 16))
	_, err := LoadMasterKey(context.Background(), encoded, nil, discardLogger())
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

type staticKeeper struct {
	plaintext []byte
	err       error
}

func (k *staticKeeper) Decrypt(_ context.Context, _ []byte) ([]byte, error) {
	return k.plaintext, k.err
}

func (k *staticKeeper) Close() error { return nil }

func TestLoadMasterKeyWithKMS(t *testing.T) {
	key := randomKey(t)
	keeper := &staticKeeper{plaintext: key}

	// The encoded value is KMS ciphertext, not the key itself.
	encoded := base64.StdEncoding.EncodeToString([]byte("wrapped-key-material"))
	masterKey, err := LoadMasterKey(context.Background(), encoded, keeper, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, key, masterKey.Bytes())
}

func TestLoadMasterKeyKMSFailure(t *testing.T) {
	keeper := &staticKeeper{err: errors.New("access denied")}

	encoded := base64.StdEncoding.EncodeToString([]byte("wrapped-key-material"))
	_, err := LoadMasterKey(context.Background(), encoded, keeper, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unwrap master key")
}
