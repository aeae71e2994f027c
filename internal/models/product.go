package models

// Product is a catalogue item.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string

	// SKU is the stock-keeping code printed on packaging.
	SKU string

	// Name is the product's display name.
	Name string

	// UnitPrice is the list price per unit.
	UnitPrice float64

	// Active controls whether the product appears in order entry.
	Active bool

	// CreatedAt is the Unix timestamp when the product was added.
	CreatedAt int64
}
