package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
)

// CustomerService manages customers and derives their credit status.
type CustomerService struct {
	store        storage.Store
	creditPeriod time.Duration
	now          func() time.Time
}

// NewCustomerService creates a CustomerService. creditPeriod is the grace
// window before an unpaid order marks the customer overdue.
func NewCustomerService(store storage.Store, creditPeriod time.Duration) *CustomerService {
	return &CustomerService{
		store:        store,
		creditPeriod: creditPeriod,
		now:          time.Now,
	}
}

// CreateCustomer validates and persists a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return validationErr("customer name is required")
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		slog.Error("CreateCustomer failed", "error", err)
		return err
	}
	customer.CreditStatus = models.CreditGood
	slog.Info("Customer created", "customer_id", customer.ID, "name", customer.Name)
	return nil
}

// GetCustomer retrieves a customer with derived credit status.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := s.creditStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.CreditStatus = status
	return customer, nil
}

// ListCustomers returns all customers with derived credit status.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for _, customer := range customers {
		status, err := s.creditStatus(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		customer.CreditStatus = status
	}
	return customers, nil
}

// UpdateCustomer validates and applies changes to an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return validationErr("customer name is required")
	}
	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return err
	}
	slog.Info("Customer updated", "customer_id", customer.ID)
	return nil
}

// DeleteCustomer removes a customer and their order history.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	slog.Info("Customer deleted", "customer_id", id)
	return nil
}

// creditStatus classifies the customer from their open orders:
// overdue if any unpaid order is older than the credit period, pending if
// any unpaid order exists at all, good otherwise.
func (s *CustomerService) creditStatus(ctx context.Context, customerID string) (models.CreditStatus, error) {
	open, err := s.store.ListCustomerOrders(ctx, customerID, true)
	if err != nil {
		return "", err
	}
	if len(open) == 0 {
		return models.CreditGood, nil
	}

	cutoff := s.now().Add(-s.creditPeriod).Unix()
	for _, order := range open {
		if order.CreatedAt < cutoff {
			return models.CreditOverdue, nil
		}
	}
	return models.CreditPending, nil
}
