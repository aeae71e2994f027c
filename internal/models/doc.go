// Package models defines the core domain models for the Roo Herbals
// distribution backend.
//
// # Models
//
//   - User: a staff account (owner, sales rep, or lorry driver)
//   - Customer: a shop or outlet that buys on credit
//   - Product: a catalogue item
//   - Order: a sales transaction with a total and a payment status
//   - Payment: a remittance recorded against an order
//
// # Design principles
//
// 1. **IDs over pointers**: relationships use ID strings to avoid circular
// references; nested slices (Order.Payments, Order.Items) are populated only
// when the caller asked for them.
//
// 2. **Server-derived status**: Order.PaymentStatus and Customer credit
// status are derived from recorded data, never accepted from clients.
//
// 3. **Plain numerics**: amounts are float64 internally; the lenient
// number-or-string coercion for inbound JSON lives at the API boundary
// (see the ledger package), not in the domain models.
package models
