package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
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
	var transitionErr *domain.InvalidTransitionError
	var metricsErr *service.MetricsError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidAccountID),
		errors.Is(err, service.ErrInvalidAccountName),
		errors.Is(err, service.ErrInvalidStatementID),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidActor),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidStockCountID),
		errors.Is(err, service.ErrInvalidItemID),
		errors.Is(err, service.ErrNoAllocations):
		return http.StatusBadRequest

	// State conflicts
	case errors.As(err, &transitionErr),
		errors.Is(err, service.ErrVehicleNotAvailable),
		errors.Is(err, service.ErrDriverNotAvailable),
		errors.Is(err, service.ErrAssignmentInProgress),
		errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrPaymentNotCaptured),
		errors.Is(err, service.ErrPaymentNotAllocated),
		errors.Is(err, service.ErrStockCountPosted),
		errors.Is(err, repository.ErrMetricsFinal):
		return http.StatusConflict

	// Upstream calculator failures
	case errors.As(err, &metricsErr):
		return http.StatusBadGateway

	// Service unavailable
	case errors.Is(err, service.ErrNoVehicleAvailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
