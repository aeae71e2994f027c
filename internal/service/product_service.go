package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
)

// ProductService manages the catalogue.
type ProductService struct {
	store storage.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store storage.Store) *ProductService {
	return &ProductService{store: store}
}

// CreateProduct validates and persists a catalogue item.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.SKU) == "" {
		return validationErr("sku is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return validationErr("product name is required")
	}
	if product.UnitPrice < 0 {
		return validationErr("unit price cannot be negative")
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		slog.Error("CreateProduct failed", "error", err)
		return err
	}
	slog.Info("Product created", "product_id", product.ID, "sku", product.SKU)
	return nil
}

// ListProducts returns the active catalogue.
func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.store.ListProducts(ctx)
}
