package models

import "github.com/rooherbals/backend/internal/ledger"

// PaymentStatus is the server-recorded payment state of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Order represents a sales transaction for one customer.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// CustomerID is the customer this order belongs to.
	CustomerID string

	// Items are the order's line items. Populated only on single-order
	// reads; list endpoints leave this nil.
	Items []OrderItem

	// Total is the final order amount.
	Total float64

	// PaymentStatus is the recorded pending/partial/paid state, updated
	// whenever a payment is recorded. Listing policy gates on this field,
	// not on the recomputed balance.
	PaymentStatus PaymentStatus

	// Payments are the remittances recorded against this order. Optional:
	// nil when not eagerly loaded, which reconciliation treats as empty.
	Payments []Payment

	// CreatedBy is the user ID who entered the order.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the order was placed.
	CreatedAt int64
}

// OrderItem is a single line on an order.
type OrderItem struct {
	// ID is the unique identifier for the line (UUID format).
	ID string

	// ProductID references the catalogue item.
	ProductID string

	// Quantity is the unit count ordered.
	Quantity int

	// UnitPrice is the price per unit at order time.
	UnitPrice float64
}

// PaymentAmounts extracts the recorded payment amounts for reconciliation.
func (o *Order) PaymentAmounts() []ledger.Amount {
	if len(o.Payments) == 0 {
		return nil
	}
	amounts := make([]ledger.Amount, len(o.Payments))
	for i, p := range o.Payments {
		amounts[i] = ledger.Amount(p.Amount)
	}
	return amounts
}

// Remaining recomputes the outstanding balance from the loaded payments.
func (o *Order) Remaining() ledger.Amount {
	return ledger.Remaining(ledger.Amount(o.Total), o.PaymentAmounts())
}

// DeriveStatus returns the payment status implied by a total and the amount
// paid so far, within the ledger float tolerance.
func DeriveStatus(total, paid float64) PaymentStatus {
	switch {
	case paid <= ledger.Tolerance:
		return PaymentPending
	case paid >= total-ledger.Tolerance:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}
