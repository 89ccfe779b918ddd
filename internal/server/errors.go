package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

var (
	ErrUnauthorized = &apiError{
		Status:  http.StatusUnauthorized,
		Code:    "unauthorized",
		Message: "invalid or missing request signature",
	}
	ErrUnknownCommand = &apiError{
		Status:  http.StatusBadRequest,
		Code:    "unknown_command",
		Message: "unknown command",
	}
	ErrTooManyRequests = &apiError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many requests",
	}
	ErrServiceUnavailable = &apiError{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: "service unavailable",
	}
)

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "invalid request payload",
	}
}

// AbortWithError terminates the request with the mapped status code.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "internal_error", "message": "internal error"},
	})
}
