package dto

import (
	"time"

	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// ProvisionWalletResponse is returned after a successful provisioning run.
// Mnemonic is present only when the request carried an account index; it is
// shown exactly once and never stored.
type ProvisionWalletResponse struct {
	PublicKey       string `json:"public_key"`
	EncryptedSecret string `json:"encrypted_secret"`
	TransactionHash string `json:"transaction_hash"`
	TrustlineAdded  bool   `json:"trustline_added"`
	Mnemonic        string `json:"mnemonic,omitempty"`
}

// MapOutcomeToResponse converts a provisioning outcome to its response DTO.
func MapOutcomeToResponse(outcome *walletDomain.ProvisionOutcome) ProvisionWalletResponse {
	return ProvisionWalletResponse{
		PublicKey:       outcome.PublicKey,
		EncryptedSecret: outcome.EncryptedSecret,
		TransactionHash: outcome.TransactionHash,
		TrustlineAdded:  outcome.TrustlineAdded,
		Mnemonic:        outcome.Mnemonic,
	}
}

// WalletResponse is the stored account record returned by lookups. The
// sealed secret is included; the plaintext key never leaves the crypto layer.
type WalletResponse struct {
	ID              string    `json:"id"`
	PublicKey       string    `json:"public_key"`
	EncryptedSecret string    `json:"encrypted_secret"`
	TransactionHash string    `json:"transaction_hash"`
	TrustlineAdded  bool      `json:"trustline_added"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapAccountToResponse converts a stored account to its response DTO.
func MapAccountToResponse(account *walletDomain.Account) WalletResponse {
	return WalletResponse{
		ID:              account.ID.String(),
		PublicKey:       account.PublicKey,
		EncryptedSecret: account.EncryptedSecret,
		TransactionHash: account.TransactionHash,
		TrustlineAdded:  account.TrustlineAdded,
		CreatedAt:       account.CreatedAt,
	}
}
