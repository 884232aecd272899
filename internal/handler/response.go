package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidstats/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return http.StatusBadRequest, "INVALID_IDENTIFIER", "channel id must be a 24 character hex identifier"
	case errors.Is(err, domain.ErrChannelNotFound):
		return http.StatusNotFound, "CHANNEL_NOT_FOUND", "channel not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "data store is unavailable, retry later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// ErrorResponder writes mapped error responses and logs server-side failures.
type ErrorResponder struct {
	log logrus.FieldLogger
}

// NewErrorResponder creates a new ErrorResponder.
func NewErrorResponder(log logrus.FieldLogger) *ErrorResponder {
	return &ErrorResponder{log: log}
}

// HandleError maps a domain error and sends the appropriate error response.
func (r *ErrorResponder) HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err,
		}).Error("request failed")
	}
	RespondError(c, status, code, msg)
}
