// Package service implements the wallet context services: key generation and
// the Horizon ledger adapter.
package service

import (
	"fmt"
	"net/http"

	"github.com/stellar/go/tools/stellar-hd-wallet/crypto/derivation"
	"github.com/stellar/go/keypair"
	"github.com/tyler-smith/go-bip39"

	"github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// KeypairGenerator produces Stellar keypairs, either from fresh entropy or
// deterministically from a new mnemonic.
type KeypairGenerator interface {
	// Random generates a keypair from fresh entropy. No recovery material
	// exists for keys produced this way.
	Random() (*keypair.Full, error)

	// FromMnemonic generates a 24-word mnemonic and derives the keypair at
	// the Stellar account path for the given index. The mnemonic is the only
	// recovery material and is never persisted.
	FromMnemonic(index uint32) (string, *keypair.Full, error)
}

type keypairGenerator struct{}

// NewKeypairGenerator returns the production keypair generator.
func NewKeypairGenerator() KeypairGenerator {
	return keypairGenerator{}
}

func (keypairGenerator) Random() (*keypair.Full, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, &domain.StructuredError{
			Status:    http.StatusInternalServerError,
			Code:      domain.CodeMnemonicGenerationFailed,
			Message:   "Failed to generate keypair",
			Retryable: true,
		}
	}
	return kp, nil
}

func (keypairGenerator) FromMnemonic(index uint32) (string, *keypair.Full, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", nil, mnemonicError(err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", nil, mnemonicError(err)
	}

	kp, err := deriveKeypair(mnemonic, index)
	if err != nil {
		return "", nil, mnemonicError(err)
	}
	return mnemonic, kp, nil
}

// deriveKeypair derives the ed25519 keypair at m/44'/148'/index' from the
// mnemonic, with an empty BIP-39 passphrase.
func deriveKeypair(mnemonic string, index uint32) (*keypair.Full, error) {
	seed := bip39.NewSeed(mnemonic, "")
	key, err := derivation.DeriveForPath(fmt.Sprintf(derivation.StellarAccountPathFormat, index), seed)
	if err != nil {
		return nil, err
	}

	var raw [32]byte
	copy(raw[:], key.Key)
	return keypair.FromRawSeed(raw)
}

func mnemonicError(err error) *domain.StructuredError {
	return &domain.StructuredError{
		Status:    http.StatusInternalServerError,
		Code:      domain.CodeMnemonicGenerationFailed,
		Message:   "Failed to generate mnemonic keypair",
		Retryable: true,
		Details:   err.Error(),
	}
}
