package models

// PaymentMethod is how a payment was remitted.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheque       PaymentMethod = "cheque"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// ValidPaymentMethod reports whether the method is one of the accepted
// values.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCheque, MethodBankTransfer:
		return true
	}
	return false
}

// Payment represents a remittance recorded against an order.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// OrderID is the order this payment settles (partially or fully).
	OrderID string

	// CustomerID is the customer the order belongs to, denormalized for
	// per-customer payment history.
	CustomerID string

	// Amount is the remitted amount.
	Amount float64

	// Method is how the payment was remitted.
	Method PaymentMethod

	// ReferenceNumber is the cheque or transfer reference. Optional.
	ReferenceNumber string

	// Notes is free-form text entered at collection time. Optional.
	Notes string

	// ReceivedBy is the user ID who collected the payment. Optional:
	// payments imported from the office may not carry a collector.
	ReceivedBy string

	// RecordedBy is the authenticated user who submitted the record.
	RecordedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
