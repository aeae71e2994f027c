// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rooherbals/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new staff account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateCustomer persists a new customer. The ID and timestamps are
	// populated by the store when absent.
	CreateCustomer(ctx context.Context, customer *models.Customer) error

	// GetCustomer retrieves a customer by ID.
	// Returns ErrNotFound when the customer does not exist.
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)

	// ListCustomers returns all customers ordered by name.
	ListCustomers(ctx context.Context) ([]*models.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	// Returns ErrNotFound when the customer does not exist.
	UpdateCustomer(ctx context.Context, customer *models.Customer) error

	// DeleteCustomer removes a customer and, via cascade, their orders and
	// payments. Returns ErrNotFound when the customer does not exist.
	DeleteCustomer(ctx context.Context, id string) error

	// CreateProduct persists a new catalogue item.
	CreateProduct(ctx context.Context, product *models.Product) error

	// ListProducts returns active products ordered by name.
	ListProducts(ctx context.Context) ([]*models.Product, error)

	// CreateOrder persists a new order with its line items.
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves an order with its items and payments eagerly
	// loaded. Returns ErrNotFound when the order does not exist.
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// ListCustomerOrders returns a customer's orders, newest first, with
	// payments eagerly loaded so callers can recompute balances.
	// When excludePaid is true, orders whose recorded payment_status is
	// "paid" are skipped; the recorded status gates visibility, not the
	// recomputed balance.
	ListCustomerOrders(ctx context.Context, customerID string, excludePaid bool) ([]*models.Order, error)

	// CreatePayment records a payment and updates the owning order's
	// payment_status in the same transaction.
	// Returns ErrNotFound when the order does not exist.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListOrderPayments returns an order's payments, oldest first.
	ListOrderPayments(ctx context.Context, orderID string) ([]models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
