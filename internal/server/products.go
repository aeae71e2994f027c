package server

import (
	"net/http"

	"github.com/rooherbals/backend/internal/models"
)

// ListProducts returns the active catalogue.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateProduct adds a catalogue item.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
	}
	if !decode(w, r, &req) {
		return
	}

	product := &models.Product{
		SKU:       req.SKU,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Active:    true,
	}
	if err := h.products.CreateProduct(r.Context(), product); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(product))
}
