package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks client-supplied input the service refused.
// Wrapped with a human-readable reason; handlers map it to 400.
var ErrValidation = errors.New("validation failed")

// OverpaymentError is the soft-warning result of the payment submission
// guard: the entered amount exceeds the recomputed remaining balance and the
// request did not carry the overpayment confirmation. Handlers surface it as
// a confirm/cancel condition rather than a hard rejection; resubmitting with
// confirmation accepts the original amount unmodified.
type OverpaymentError struct {
	// Amount is the submitted payment amount.
	Amount float64
	// Remaining is the recomputed outstanding balance at submission time.
	Remaining float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment %.2f exceeds remaining balance %.2f", e.Amount, e.Remaining)
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
