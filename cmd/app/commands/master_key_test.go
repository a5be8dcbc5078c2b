package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
)

type mockKMSService struct {
	mock.Mock
}

func (m *mockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.KMSKeeper), args.Error(1)
}

type mockKMSKeeper struct {
	mock.Mock
}

func (m *mockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

var masterKeyLine = regexp.MustCompile(`MASTER_ENCRYPTION_KEY="([^"]+)"`)

func TestRunCreateMasterKey(t *testing.T) {
	ctx := context.Background()

	t.Run("plain mode", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, nil, &out, "")
		require.NoError(t, err)

		match := masterKeyLine.FindStringSubmatch(out.String())
		require.Len(t, match, 2)

		key, err := base64.StdEncoding.DecodeString(match[1])
		require.NoError(t, err)
		require.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("plain mode generates distinct keys", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunCreateMasterKey(ctx, nil, &first, ""))
		require.NoError(t, RunCreateMasterKey(ctx, nil, &second, ""))

		require.NotEqual(t,
			masterKeyLine.FindStringSubmatch(first.String())[1],
			masterKeyLine.FindStringSubmatch(second.String())[1],
		)
	})

	t.Run("kms mode", func(t *testing.T) {
		mockService := &mockKMSService{}
		mockKeeper := &mockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("wrapped"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, mockService, &out, "base64key://...")
		require.NoError(t, err)

		match := masterKeyLine.FindStringSubmatch(out.String())
		require.Len(t, match, 2)
		require.Equal(t, base64.StdEncoding.EncodeToString([]byte("wrapped")), match[1])
		require.Contains(t, out.String(), `KMS_KEY_URI="base64key://..."`)

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("kms error", func(t *testing.T) {
		mockService := &mockKMSService{}
		mockService.On("OpenKeeper", ctx, "invalid").Return(nil, errors.New("kms error"))

		err := RunCreateMasterKey(ctx, mockService, &bytes.Buffer{}, "invalid")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}
