package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeypairGeneratorRandom(t *testing.T) {
	gen := NewKeypairGenerator()

	kp1, err := gen.Random()
	require.NoError(t, err)
	kp2, err := gen.Random()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(kp1.Address(), "G"))
	assert.True(t, strings.HasPrefix(kp1.Seed(), "S"))
	assert.NotEqual(t, kp1.Address(), kp2.Address())
}

func TestKeypairGeneratorFromMnemonic(t *testing.T) {
	gen := NewKeypairGenerator()

	mnemonic, kp, err := gen.FromMnemonic(0)
	require.NoError(t, err)
	require.NotNil(t, kp)

	assert.Len(t, strings.Fields(mnemonic), 24)
	assert.True(t, strings.HasPrefix(kp.Address(), "G"))

	// The same mnemonic and index must rederive the same keypair.
	again, err := deriveKeypair(mnemonic, 0)
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), again.Address())
	assert.Equal(t, kp.Seed(), again.Seed())

	// A different index on the same mnemonic yields a different keypair.
	other, err := deriveKeypair(mnemonic, 1)
	require.NoError(t, err)
	assert.NotEqual(t, kp.Address(), other.Address())
}

func TestKeypairGeneratorFromMnemonicFreshEntropy(t *testing.T) {
	gen := NewKeypairGenerator()

	m1, _, err := gen.FromMnemonic(0)
	require.NoError(t, err)
	m2, _, err := gen.FromMnemonic(0)
	require.NoError(t, err)

	assert.NotEqual(t, m1, m2)
}
