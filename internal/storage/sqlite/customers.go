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

// CreateCustomer persists a new customer to the database.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	// Generate ID and timestamps if not set
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if customer.CreatedAt == 0 {
		customer.CreatedAt = now
	}
	if customer.UpdatedAt == 0 {
		customer.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, contact_name, phone, address, area, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID, customer.Name, customer.ContactName, customer.Phone,
		customer.Address, customer.Area, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *SQLiteStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, contact_name, phone, address, area, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer.ID, &customer.Name, &customer.ContactName, &customer.Phone,
		&customer.Address, &customer.Area, &customer.CreatedAt, &customer.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// ListCustomers returns all customers ordered by name.
func (s *SQLiteStore) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, contact_name, phone, address, area, created_at, updated_at
		 FROM customers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.ContactName,
			&customer.Phone, &customer.Address, &customer.Area,
			&customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// UpdateCustomer updates an existing customer's details.
func (s *SQLiteStore) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE customers
		 SET name = ?, contact_name = ?, phone = ?, address = ?, area = ?, updated_at = ?
		 WHERE id = ?`,
		customer.Name, customer.ContactName, customer.Phone, customer.Address,
		customer.Area, customer.UpdatedAt, customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteCustomer removes a customer. Orders and payments cascade.
func (s *SQLiteStore) DeleteCustomer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("customer %s: %w", id, storage.ErrNotFound)
	}

	return nil
}
