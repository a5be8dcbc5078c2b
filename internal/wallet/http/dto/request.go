// Package dto provides data transfer objects for the wallet HTTP API.
package dto

import (
	"math"

	validation "github.com/jellydator/validation"
)

// ProvisionWalletRequest contains the optional parameters for provisioning a
// custodial account. When AccountIndex is set, the keypair is derived from a
// fresh mnemonic at that index and the mnemonic is included in the response.
type ProvisionWalletRequest struct {
	AccountIndex *int64 `json:"account_index"`
}

// Validate checks if the provision request is valid.
func (r *ProvisionWalletRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccountIndex,
			validation.Min(int64(0)),
			validation.Max(int64(math.MaxUint32)),
		),
	)
}

// Index returns the account index as the derivation type, or nil when absent.
func (r *ProvisionWalletRequest) Index() *uint32 {
	if r.AccountIndex == nil {
		return nil
	}
	index := uint32(*r.AccountIndex)
	return &index
}
