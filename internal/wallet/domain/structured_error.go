package domain

import (
	"fmt"
	"net/http"
	"time"
)

// Stable machine-readable error codes. Callers drive retry policy off the
// Retryable flag and RetryAfter hint, not off these codes or the HTTP status.
const (
	CodeInvalidAccountIndex      = "INVALID_ACCOUNT_INDEX"
	CodeMnemonicGenerationFailed = "MNEMONIC_GENERATION_FAILED"

	CodeMissingHorizonURL    = "CONFIG_MISSING_HORIZON_URL"
	CodeMissingSponsorKey    = "CONFIG_MISSING_SPONSOR_KEY"
	CodeMissingSponsorSecret = "CONFIG_MISSING_SPONSOR_SECRET"
	CodeMissingAssetCode     = "CONFIG_MISSING_ASSET_CODE"
	CodeMissingAssetIssuer   = "CONFIG_MISSING_ISSUER_ADDRESS"

	CodeInsufficientFunds     = "STELLAR_INSUFFICIENT_FUNDS"
	CodeSequenceError         = "STELLAR_SEQUENCE_ERROR"
	CodeAccountExists         = "STELLAR_ACCOUNT_EXISTS"
	CodeTimeout               = "STELLAR_TIMEOUT"
	CodeNetworkError          = "STELLAR_NETWORK_ERROR"
	CodeAccountCreationFailed = "STELLAR_ACCOUNT_CREATION_FAILED"
	CodeTrustlineFailed       = "TRUSTLINE_SETUP_FAILED"

	CodeEncryptionFailed = "ENCRYPTION_FAILED"
	CodeStorageFailed    = "STORAGE_FAILED"
)

// StructuredError is the single error type that crosses the workflow boundary.
// Every failure path produces exactly one of these; raw ledger or network
// errors never leak past the step that caught them, and a classified error is
// never re-classified by an outer layer.
type StructuredError struct {
	// Status is the HTTP-equivalent status the error maps to.
	Status int
	// Code is a stable machine-readable identifier.
	Code string
	// Message is a human-readable summary, safe to return to clients.
	Message string
	// Retryable reports whether retrying the request can succeed.
	Retryable bool
	// RetryAfter is the suggested backoff before a retry, zero when not retryable.
	RetryAfter time.Duration
	// Details carries optional operator-facing context, e.g. the creation
	// transaction hash on a partial trustline failure.
	Details string
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigError builds the non-retryable error for missing configuration.
func NewConfigError(code, message string) *StructuredError {
	return &StructuredError{
		Status:    http.StatusInternalServerError,
		Code:      code,
		Message:   message,
		Retryable: false,
		Details:   "Server configuration error. Please contact support.",
	}
}

// NewClientError builds a non-retryable error caused by invalid caller input.
func NewClientError(code, message string) *StructuredError {
	return &StructuredError{
		Status:    http.StatusBadRequest,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}
