package domain

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Step identifies which workflow step a raw ledger error escaped from. It
// selects the fallback classification for errors no matcher recognizes.
type Step string

// Workflow steps with externally observable failures.
const (
	StepCreateAccount Step = "create_account"
	StepTrustline     Step = "trustline"
)

// ledgerMatcher maps a raw failure signal to its classification. Matching is
// first-match-wins over the raw error message, so order matters.
type ledgerMatcher struct {
	substrings []string
	build      func() *StructuredError
}

// ledgerMatchers is the single source of truth for retry policy. Callers must
// not infer retryability from the HTTP status alone.
var ledgerMatchers = []ledgerMatcher{
	{
		substrings: []string{"op_underfunded", "insufficient"},
		build: func() *StructuredError {
			return &StructuredError{
				Status:    http.StatusBadRequest,
				Code:      CodeInsufficientFunds,
				Message:   "Sponsor account has insufficient funds",
				Retryable: false,
				Details:   "The sponsor account does not have enough funds. This is a permanent error.",
			}
		},
	},
	{
		substrings: []string{"tx_bad_seq"},
		build: func() *StructuredError {
			return &StructuredError{
				Status:     http.StatusServiceUnavailable,
				Code:       CodeSequenceError,
				Message:    "Service temporarily unavailable, please try again",
				Retryable:  true,
				RetryAfter: 5 * time.Second,
				Details:    "Concurrent submissions raced on the sponsor sequence number. Please retry after a few seconds.",
			}
		},
	},
	{
		substrings: []string{"op_already_exists", "already exists"},
		build: func() *StructuredError {
			return &StructuredError{
				Status:    http.StatusConflict,
				Code:      CodeAccountExists,
				Message:   "Account already exists",
				Retryable: false,
				Details:   "An account or trustline with this public key already exists on the Stellar network.",
			}
		},
	},
	{
		substrings: []string{"timeout", "deadline exceeded"},
		build: func() *StructuredError {
			return &StructuredError{
				Status:     http.StatusGatewayTimeout,
				Code:       CodeTimeout,
				Message:    "Request timeout - Stellar network did not respond in time",
				Retryable:  true,
				RetryAfter: 10 * time.Second,
				Details:    "The submission outcome is indeterminate. Check whether the account exists before retrying creation.",
			}
		},
	},
	{
		substrings: []string{"network", "connection"},
		build: func() *StructuredError {
			return &StructuredError{
				Status:     http.StatusServiceUnavailable,
				Code:       CodeNetworkError,
				Message:    "Network error - unable to connect to Stellar network",
				Retryable:  true,
				RetryAfter: 15 * time.Second,
				Details:    "Unable to connect to the Stellar network. Please retry after a few seconds.",
			}
		},
	},
	{
		substrings: []string{"not configured"},
		build: func() *StructuredError {
			return NewConfigError(CodeMissingHorizonURL, "Required configuration is missing")
		},
	},
}

// ClassifyLedgerError converts a raw failure from the ledger adapter into a
// StructuredError. An already classified error passes through unchanged. An
// unmatched error falls through to a retryable default whose code depends on
// the step it escaped from, rather than being dropped.
func ClassifyLedgerError(err error, step Step) *StructuredError {
	var structured *StructuredError
	if errors.As(err, &structured) {
		return structured
	}

	message := strings.ToLower(err.Error())
	for _, m := range ledgerMatchers {
		for _, substring := range m.substrings {
			if strings.Contains(message, substring) {
				return m.build()
			}
		}
	}

	return fallbackError(step)
}

// fallbackError is the generic retryable classification for unmatched errors.
func fallbackError(step Step) *StructuredError {
	code := CodeAccountCreationFailed
	message := "Failed to create account"
	if step == StepTrustline {
		code = CodeTrustlineFailed
		message = "Failed to add trustline after account creation"
	}

	return &StructuredError{
		Status:     http.StatusInternalServerError,
		Code:       code,
		Message:    message,
		Retryable:  true,
		RetryAfter: 5 * time.Second,
		Details:    "An unexpected error occurred. Please retry the request.",
	}
}
