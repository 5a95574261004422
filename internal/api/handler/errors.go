package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/service"
)

// badRequestSentinels are the business-rule violations a user can
// trigger with well-formed but unservable input.
var badRequestSentinels = []error{
	domain.ErrUnknownSymbol,
	domain.ErrInsufficientFunds,
	domain.ErrInsufficientShares,
	domain.ErrUsernameTaken,
}

// respondError maps service and domain errors onto the HTTP error
// taxonomy: input validation and business-rule violations are 400,
// bad credentials 403, unknown resources 404, everything else 500.
// Domain sentinels surface their canonical message; the wrapped detail
// stays server-side.
func respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	message := err.Error()

	var svcErr *service.ServiceError
	switch {
	case errors.As(err, &svcErr):
		code = svcErr.Code
		message = svcErr.Message
	case errors.Is(err, domain.ErrInvalidCredentials):
		code = http.StatusForbidden
		message = domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		message = domain.ErrNotFound.Error()
	default:
		for _, sentinel := range badRequestSentinels {
			if errors.Is(err, sentinel) {
				code = http.StatusBadRequest
				message = sentinel.Error()
				break
			}
		}
	}

	c.JSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}
