package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/auth"
	"cab/internal/estimator"
	"cab/internal/repository"
	"cab/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrLoginFlowNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidAdminMethod),
		errors.Is(err, service.ErrInvalidMobileNumber),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrMissingBookingDetails),
		errors.Is(err, service.ErrInvalidVehicleType),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrPolicyNotAcknowledged):
		return http.StatusBadRequest

	// Authentication failures
	case errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMobileNotRegistered):
		return http.StatusUnauthorized

	// Ownership failures
	case errors.Is(err, service.ErrBookingNotOwned):
		return http.StatusForbidden

	// Wizard step conflicts
	case errors.Is(err, service.ErrInvalidLoginStep),
		errors.Is(err, service.ErrBookingNotAtFareDetails),
		errors.Is(err, service.ErrBookingNotAtPayment),
		errors.Is(err, service.ErrBookingNotConfirmed),
		errors.Is(err, service.ErrBookingBusy):
		return http.StatusConflict

	// The simulated gateway declined the advance.
	case errors.Is(err, service.ErrPaymentFailed):
		return http.StatusPaymentRequired

	// Upstream estimator failure
	case errors.Is(err, estimator.ErrEstimateUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
