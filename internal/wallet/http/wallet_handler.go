// Package http provides HTTP handlers for custodial account provisioning.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/syteworks/stellar-custody/internal/httputil"
	customValidation "github.com/syteworks/stellar-custody/internal/validation"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
	"github.com/syteworks/stellar-custody/internal/wallet/http/dto"
	walletUseCase "github.com/syteworks/stellar-custody/internal/wallet/usecase"
)

// WalletHandler handles HTTP requests for account provisioning.
type WalletHandler struct {
	walletUseCase walletUseCase.WalletUseCase
	logger        *slog.Logger
}

// NewWalletHandler creates a new wallet handler with required dependencies.
func NewWalletHandler(useCase walletUseCase.WalletUseCase, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: useCase,
		logger:        logger,
	}
}

// ProvisionHandler provisions a new custodial account.
// POST /v1/wallets - Returns 201 Created with the provisioning outcome.
// An empty body is valid and provisions from fresh entropy.
func (h *WalletHandler) ProvisionHandler(c *gin.Context) {
	var req dto.ProvisionWalletRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}

	if err := req.Validate(); err != nil {
		structured := walletDomain.NewClientError(
			walletDomain.CodeInvalidAccountIndex,
			"account_index must be a non-negative integer",
		)
		structured.Details = err.Error()
		httputil.HandleErrorGin(c, structured, h.logger)
		return
	}

	outcome, err := h.walletUseCase.Provision(c.Request.Context(), req.Index())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapOutcomeToResponse(outcome))
}

// GetHandler retrieves a provisioned account record by public key.
// GET /v1/wallets/:public_key - Returns 200 OK with the stored record.
func (h *WalletHandler) GetHandler(c *gin.Context) {
	publicKey := strings.TrimSpace(c.Param("public_key"))
	if publicKey == "" {
		err := customValidation.WrapValidationError(fmt.Errorf("public_key cannot be empty"))
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	account, err := h.walletUseCase.Get(c.Request.Context(), publicKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}
