package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// writeDomainError maps the typed domain errors onto HTTP statuses. Errors are
// passed through from the use cases unmodified; anything unknown is a 500.
func writeDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrSelfInterest), errors.Is(err, domain.ErrSelfUnlock):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrInterestNotFound),
		errors.Is(err, domain.ErrWalletNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateActive),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInterestNotAccepted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
