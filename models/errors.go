package models

import "errors"

// Domain errors raised by model methods. Controllers translate these into
// response envelopes with errors.Is, nothing here knows about HTTP.
var (
	ErrForbidden          = errors.New("operation not permitted for this actor")
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrAlreadyDeleted     = errors.New("record already deleted")
	ErrInsufficientFunds  = errors.New("insufficient account balance")
	ErrCartConsumed       = errors.New("cart already converted to an order")
	ErrFrozen             = errors.New("record is in a terminal state and can no longer change")
	ErrQuantityExceeded   = errors.New("shipped quantity exceeds remaining order item quantity")
	ErrEvidenceRequired   = errors.New("evidence reference must not be empty")
	ErrUnknownTransaction = errors.New("unknown transaction type")
)
