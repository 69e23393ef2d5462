package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nemt/internal/middleware"
	"nemt/internal/pricing"
	"nemt/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service and pricing errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var cfgErr *pricing.ConfigurationError

	switch {
	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrDateRangeTooLarge),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidTripType),
		errors.Is(err, service.ErrInvalidPickupTime),
		errors.Is(err, service.ErrInvalidTripDetails),
		errors.Is(err, service.ErrInvalidCancellationTime),
		errors.Is(err, service.ErrInvalidYear),
		errors.Is(err, service.ErrInvalidLimit):
		return http.StatusBadRequest

	// Unknown service type in the rate policy
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// money renders a decimal amount rounded to cents.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// parseTimeParam accepts RFC 3339 timestamps and bare dates. A bare date is
// midnight in loc, or the last instant of that day when endOfDay is set.
func parseTimeParam(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

// requestActor names the caller in audit entries.
func requestActor(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return "request:" + id
	}
	return "api"
}

// queryParam returns the first non-empty query value among keys.
func queryParam(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if value := c.Query(key); value != "" {
			return value
		}
	}
	return ""
}
