package service

import (
	"context"
	"log/slog"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
)

// OrderService reads orders with their reconciled balances.
type OrderService struct {
	store storage.Store
}

// NewOrderService creates a new OrderService.
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder validates and persists a new order.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CustomerID == "" {
		return validationErr("customer_id is required")
	}
	if order.Total < 0 {
		return validationErr("total cannot be negative")
	}
	if _, err := s.store.GetCustomer(ctx, order.CustomerID); err != nil {
		return err
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		slog.Error("CreateOrder failed", "error", err)
		return err
	}
	slog.Info("Order created", "order_id", order.ID, "customer_id", order.CustomerID, "total", order.Total)
	return nil
}

// GetOrder retrieves an order with items and payments loaded.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// ListCustomerOrders returns a customer's orders. pendingOnly selects the
// payment-picker view: orders whose recorded payment_status is 'paid' are
// excluded regardless of the recomputed remaining balance.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string, pendingOnly bool) ([]*models.Order, error) {
	if _, err := s.store.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.ListCustomerOrders(ctx, customerID, pendingOnly)
}

// ListOrderPayments returns the payments recorded against an order.
func (s *OrderService) ListOrderPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.store.ListOrderPayments(ctx, orderID)
}
