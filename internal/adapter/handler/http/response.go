package http

import (
	"errors"
	"net/http"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message" example:"maintenance 4 not found"`
}

type successResponse struct {
	Message string `json:"message" example:"Maintenance deleted successfully"`
}

func newErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{Message: message})
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the client-facing message of domain errors and hides everything else.
func handleError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		newErrorResponse(c, statusFor(err), domainErr.Message)
		return
	}
	newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
