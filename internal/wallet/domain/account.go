// Package domain defines core domain models and errors for custodial wallet
// provisioning.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted record of a provisioned custodial account: the
// public identity plus the sealed private key. The plaintext private key never
// reaches this type; only the envelope ciphertext is stored.
type Account struct {
	ID              uuid.UUID
	PublicKey       string
	EncryptedSecret string
	TransactionHash string
	TrustlineAdded  bool
	CreatedAt       time.Time
}

// ProvisionOutcome is returned to the caller after a successful provisioning
// run. Mnemonic is only set in the derived-keypair variant, where the caller
// supplied an account index; the fresh-entropy variant produces no recovery
// material.
type ProvisionOutcome struct {
	Mnemonic        string
	PublicKey       string
	EncryptedSecret string
	TransactionHash string
	TrustlineAdded  bool
}

// State identifies a position in the linear provisioning state machine.
// PARTIAL is terminal: the account exists on-chain without a trustline.
type State string

// Workflow states, in order of progression.
const (
	StateStart              State = "START"
	StateKeyGenerated       State = "KEY_GENERATED"
	StateAccountSubmitted   State = "ACCOUNT_SUBMITTED"
	StateTrustlineSubmitted State = "TRUSTLINE_SUBMITTED"
	StateSecretSealed       State = "SECRET_SEALED"
	StateDone               State = "DONE"
	StatePartial            State = "PARTIAL"
	StateFailed             State = "FAILED"
)

// SponsorConfig holds the external configuration the workflow depends on.
// Every value is required before the first ledger call; a missing value is an
// operator mistake and must never be retried.
type SponsorConfig struct {
	HorizonURL         string
	NetworkPassphrase  string
	SponsorPublicKey   string
	SponsorPrivateKey  string
	AssetCode          string
	AssetIssuer        string
	TrustlineLimit     string
	TransactionTimeout time.Duration
}

// Validate checks that all required configuration is present. It returns a
// non-retryable configuration error for the first missing value, or nil.
func (c SponsorConfig) Validate() *StructuredError {
	switch {
	case c.HorizonURL == "":
		return NewConfigError(CodeMissingHorizonURL, "STELLAR_HORIZON_URL not configured")
	case c.SponsorPublicKey == "":
		return NewConfigError(CodeMissingSponsorKey, "SPONSOR_PUBLIC_KEY not configured")
	case c.SponsorPrivateKey == "":
		return NewConfigError(CodeMissingSponsorSecret, "SPONSOR_PRIVATE_KEY not configured")
	case c.AssetCode == "":
		return NewConfigError(CodeMissingAssetCode, "ASSET_CODE not configured")
	case c.AssetIssuer == "":
		return NewConfigError(CodeMissingAssetIssuer, "ASSET_ISSUER_ADDRESS not configured")
	}
	return nil
}
