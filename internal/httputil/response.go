// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/syteworks/stellar-custody/internal/errors"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// ErrorResponse represents a structured error response. Retryable and
// RetryAfter are only populated for provisioning errors, where the client is
// expected to drive its retry policy from them.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Retryable  *bool  `json:"retryable,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Details    string `json:"details,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON
// response. Provisioning errors carry their own status, retry hints, and
// stable code; sentinel errors fall back to a generic mapping. Unknown errors
// never leak details to the client.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	var structured *walletDomain.StructuredError
	switch {
	case apperrors.As(err, &structured):
		statusCode = structured.Status
		retryable := structured.Retryable
		errorResponse = ErrorResponse{
			Error:      strings.ToLower(structured.Code),
			Message:    structured.Message,
			Code:       structured.Code,
			Retryable:  &retryable,
			RetryAfter: int(structured.RetryAfter.Seconds()),
			Details:    structured.Details,
		}
		if retryable && structured.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(structured.RetryAfter.Seconds())))
		}

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
