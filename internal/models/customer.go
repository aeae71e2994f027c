package models

// CreditStatus classifies a customer's payment timeliness.
// Derived server-side from the customer's open orders; the client consumes
// it as-is.
type CreditStatus string

const (
	// CreditGood means no outstanding orders.
	CreditGood CreditStatus = "good"

	// CreditPending means outstanding orders exist, all within the credit
	// period.
	CreditPending CreditStatus = "pending"

	// CreditOverdue means at least one outstanding order is older than the
	// credit period.
	CreditOverdue CreditStatus = "overdue"
)

// Customer represents a shop or outlet served by the distribution network.
type Customer struct {
	// ID is the unique identifier for the customer (UUID format).
	ID string

	// Name is the shop or outlet name.
	Name string

	// ContactName is the person to speak to at the outlet.
	ContactName string

	// Phone is the outlet's contact number.
	Phone string

	// Address is the delivery address.
	Address string

	// Area is the sales route / region the outlet belongs to.
	Area string

	// CreditStatus is the derived good/pending/overdue classification.
	// Populated on reads; not stored.
	CreditStatus CreditStatus

	// CreatedAt is the Unix timestamp when the customer was registered.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64
}
