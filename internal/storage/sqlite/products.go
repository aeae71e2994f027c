package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rooherbals/backend/internal/models"
)

// CreateProduct persists a new catalogue item.
func (s *SQLiteStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt == 0 {
		product.CreatedAt = time.Now().Unix()
	}

	active := 0
	if product.Active {
		active = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, sku, name, unit_price, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.SKU, product.Name, product.UnitPrice, active, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// ListProducts returns active products ordered by name.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sku, name, unit_price, active, created_at
		 FROM products WHERE active = 1 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var active int
		if err := rows.Scan(&product.ID, &product.SKU, &product.Name,
			&product.UnitPrice, &active, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.Active = active == 1
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}
