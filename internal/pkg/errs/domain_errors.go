package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Product / variant errors
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrMissingOptions    = errors.New("variant options are required")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Optimistic concurrency
	ErrVersionConflict = errors.New("concurrent modification: version conflict")

	// Reservation errors
	ErrReservationNotFound       = errors.New("reservation not found")
	ErrInvalidReservationRequest = errors.New("invalid reservation request")

	// Admin errors
	ErrInvalidStockAdjustment = errors.New("invalid stock adjustment")

	// Order event errors
	ErrInvalidOrderEvent = errors.New("invalid order event")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
