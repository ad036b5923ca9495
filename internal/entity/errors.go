package entity

import "errors"

// Error taxonomy for remote-call failures. Every error leaving a service wraps
// one of these so callers can tell retry-safe failures from fatal ones.
var (
	// ErrAuthRequired means the action needs a logged-in user (or admin).
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation means required input is missing; no remote call was made.
	ErrValidation = errors.New("required fields missing")

	// ErrNetwork is a transport failure before anything was committed.
	// Safe to retry from the top of the flow.
	ErrNetwork = errors.New("could not reach store backend")

	// ErrGateway is a payment-gateway failure before capture.
	// Safe to retry from the top of the flow.
	ErrGateway = errors.New("payment gateway failure")

	// ErrOrderPersistence means payment was captured but the order save
	// failed. Never auto-retried; the user must contact support or retry
	// the save manually.
	ErrOrderPersistence = errors.New("payment captured but order not recorded, contact support")

	// ErrStockConflict means the requested quantity exceeds live stock.
	// Recovered by clamping, not a hard failure.
	ErrStockConflict = errors.New("requested quantity exceeds available stock")
)
