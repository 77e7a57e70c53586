// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/maxviazov/installment-console/internal/service"
)

// ErrorPayload is the canonical error envelope of the console's JSON endpoints.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Backend-side failures surface as gateway errors since the console is only a front.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: repository.ServerMessage(err)}
	case errors.Is(err, repository.ErrRejected):
		return http.StatusUnprocessableEntity, ErrorPayload{Error: "rejected", Message: repository.ServerMessage(err)}
	case errors.Is(err, repository.ErrInternalServer):
		return http.StatusBadGateway, ErrorPayload{Error: "backend_error", Message: repository.ServerMessage(err)}
	case errors.Is(err, repository.ErrBadResponse):
		return http.StatusBadGateway, ErrorPayload{Error: "bad_backend_response"}
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "backend_unavailable"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorPayload{Error: "timeout"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WriteNotice answers an action with its notice; failures keep their mapped status.
func WriteNotice(c *gin.Context, n service.Notice, err error) {
	if err != nil {
		status, _ := MapError(err)
		c.AbortWithStatusJSON(status, n)
		return
	}
	c.JSON(http.StatusOK, n)
}
