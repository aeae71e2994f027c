package service

import (
	"context"
	"log/slog"

	"github.com/rooherbals/backend/internal/ledger"
	"github.com/rooherbals/backend/internal/metrics"
	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
)

// PaymentService records payments against orders, applying the overpayment
// submission guard.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// RecordPaymentInput is everything a payment submission carries.
// Amount is a ledger.Amount so number-or-string JSON typing is absorbed at
// the boundary.
type RecordPaymentInput struct {
	CustomerID      string
	OrderID         string
	Amount          ledger.Amount
	Method          models.PaymentMethod
	ReferenceNumber string
	Notes           string
	ReceivedBy      string

	// ConfirmOverpayment acknowledges the overpayment warning: when set,
	// an amount exceeding the remaining balance is accepted unmodified.
	ConfirmOverpayment bool

	// RecordedBy is the authenticated user submitting the record.
	RecordedBy string
}

// RecordPayment validates the submission, applies the overpayment guard,
// and persists the payment.
//
// Guard semantics: an amount exceeding the order's recomputed remaining
// balance fails with *OverpaymentError unless ConfirmOverpayment is set.
// Confirmation submits the original amount unmodified; the guard warns, it
// never rewrites.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	if input.OrderID == "" {
		return nil, validationErr("order_id is required")
	}
	if input.Amount <= 0 {
		return nil, validationErr("amount must be greater than zero")
	}
	if !models.ValidPaymentMethod(input.Method) {
		return nil, validationErr("payment_method must be cash, cheque, or bank_transfer")
	}

	order, err := s.store.GetOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.CustomerID != "" && order.CustomerID != input.CustomerID {
		return nil, validationErr("order %s does not belong to customer %s", input.OrderID, input.CustomerID)
	}

	remaining := order.Remaining()
	if ledger.Exceeds(input.Amount, remaining) && !input.ConfirmOverpayment {
		slog.Warn("Overpayment warning",
			"order_id", order.ID,
			"amount", input.Amount.Float64(),
			"remaining", remaining.Float64(),
		)
		metrics.RecordOverpaymentWarning()
		return nil, &OverpaymentError{
			Amount:    input.Amount.Float64(),
			Remaining: remaining.Float64(),
		}
	}

	payment := &models.Payment{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		Amount:          input.Amount.Float64(),
		Method:          input.Method,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
		ReceivedBy:      input.ReceivedBy,
		RecordedBy:      input.RecordedBy,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	metrics.RecordPayment(string(payment.Method))
	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"amount", payment.Amount,
		"method", payment.Method,
	)
	return payment, nil
}
