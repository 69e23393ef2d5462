package service

import "errors"

var (
	// ErrInvalidDateRange is returned when a scan window is missing or inverted.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateRangeTooLarge is returned when a scan window exceeds the allowed span.
	ErrDateRangeTooLarge = errors.New("date range too large")

	// ErrInvalidDistance is returned when trip distance is negative or not a number.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInvalidTripType is returned when the trip type is not recognised.
	ErrInvalidTripType = errors.New("invalid trip type")

	// ErrInvalidPickupTime is returned when the pickup time is missing.
	ErrInvalidPickupTime = errors.New("invalid pickup time")

	// ErrInvalidTripDetails is returned when wait time, stops or stair counts are negative.
	ErrInvalidTripDetails = errors.New("invalid trip details")

	// ErrInvalidCancellationTime is returned when trip or cancellation time is missing.
	ErrInvalidCancellationTime = errors.New("invalid cancellation time")

	// ErrInvalidYear is returned when a holiday year is out of range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidLimit is returned when a list limit is out of range.
	ErrInvalidLimit = errors.New("invalid limit")
)
