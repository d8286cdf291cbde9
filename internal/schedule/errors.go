package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCount       = errors.New("installment count out of range")
	ErrSumMismatch        = errors.New("installments do not add up to the contract total")
	ErrNegativeAmount     = errors.New("installment amount cannot be negative")
	ErrUnknownPaymentType = errors.New("unknown payment type")
	ErrIndexOutOfRange    = errors.New("installment index out of range")
)

// ValidationError blocks a save and carries the message shown to the user.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
