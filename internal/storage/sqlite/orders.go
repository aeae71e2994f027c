package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
)

// CreateOrder persists a new order with its line items.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	// Generate IDs if not set
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, total, payment_status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.CustomerID, order.Total, string(order.PaymentStatus),
		order.CreatedBy, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			 VALUES (?, ?, ?, ?, ?)`,
			item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOrder retrieves an order by ID, including items and payments.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, total, payment_status, created_by, created_at
		 FROM orders WHERE id = ?`,
		id,
	).Scan(&order.ID, &order.CustomerID, &order.Total, &status,
		&order.CreatedBy, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.PaymentStatus = models.PaymentStatus(status)

	// Load line items
	itemRows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, quantity, unit_price
		 FROM order_items WHERE order_id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItem
		if err := itemRows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	// Load payments
	payments, err := s.ListOrderPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Payments = payments

	return order, nil
}

// ListCustomerOrders returns a customer's orders with payments loaded.
// When excludePaid is true, orders with recorded status 'paid' are skipped;
// visibility gates on the recorded status, not the recomputed balance.
func (s *SQLiteStore) ListCustomerOrders(ctx context.Context, customerID string, excludePaid bool) ([]*models.Order, error) {
	query := `SELECT id, customer_id, total, payment_status, created_by, created_at
	          FROM orders WHERE customer_id = ?`
	args := []any{customerID}
	if excludePaid {
		query += ` AND payment_status != ?`
		args = append(args, string(models.PaymentPaid))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var status string
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Total, &status,
			&order.CreatedBy, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.PaymentStatus = models.PaymentStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	// Attach payments per order so callers can recompute balances.
	for _, order := range orders {
		payments, err := s.ListOrderPayments(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Payments = payments
	}

	return orders, nil
}
