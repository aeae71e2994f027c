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

// CreatePayment records a payment and updates the owning order's
// payment_status in the same transaction, so the recorded status can never
// drift from the recorded payments within this store.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID and timestamp if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock in the order's total and customer inside the transaction.
	var total float64
	var customerID string
	err = tx.QueryRowContext(ctx,
		"SELECT total, customer_id FROM orders WHERE id = ?",
		payment.OrderID,
	).Scan(&total, &customerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("order %s: %w", payment.OrderID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get order for payment: %w", err)
	}
	payment.CustomerID = customerID

	var refNumber, notes, receivedBy any
	if payment.ReferenceNumber != "" {
		refNumber = payment.ReferenceNumber
	}
	if payment.Notes != "" {
		notes = payment.Notes
	}
	if payment.ReceivedBy != "" {
		receivedBy = payment.ReceivedBy
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, order_id, customer_id, amount, method, reference_number, notes, received_by, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, payment.CustomerID, payment.Amount,
		string(payment.Method), refNumber, notes, receivedBy,
		payment.RecordedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	// Recompute the recorded status from the payments now on file.
	var paid float64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_id = ?",
		payment.OrderID,
	).Scan(&paid)
	if err != nil {
		return fmt.Errorf("failed to sum payments: %w", err)
	}

	status := models.DeriveStatus(total, paid)
	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET payment_status = ? WHERE id = ?",
		string(status), payment.OrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListOrderPayments returns an order's payments, oldest first.
func (s *SQLiteStore) ListOrderPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, customer_id, amount, method, reference_number, notes, received_by, recorded_by, created_at
		 FROM payments WHERE order_id = ? ORDER BY created_at, id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		var method string
		var refNumber, notes, receivedBy sql.NullString
		if err := rows.Scan(&payment.ID, &payment.OrderID, &payment.CustomerID,
			&payment.Amount, &method, &refNumber, &notes, &receivedBy,
			&payment.RecordedBy, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Method = models.PaymentMethod(method)
		if refNumber.Valid {
			payment.ReferenceNumber = refNumber.String
		}
		if notes.Valid {
			payment.Notes = notes.String
		}
		if receivedBy.Valid {
			payment.ReceivedBy = receivedBy.String
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
