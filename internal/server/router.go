// Package server assembles the HTTP surface of the distribution backend.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/metrics"
	"github.com/rooherbals/backend/internal/middleware"
	"github.com/rooherbals/backend/internal/rbac"
)

// NewRouter wires the full route table: public auth and health endpoints,
// then the authenticated API with per-route capability gates.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	requireAuth := middleware.RequireAuth(jwtManager, writeError)
	gate := func(capability rbac.Capability) func(http.Handler) http.Handler {
		return middleware.RequireCapability(capability, writeError)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.With(gate(rbac.CapViewCustomers)).Get("/customers", h.ListCustomers)
			r.With(gate(rbac.CapAddCustomer)).Post("/customers", h.CreateCustomer)
			r.With(gate(rbac.CapViewCustomers)).Get("/customers/{id}", h.GetCustomer)
			r.With(gate(rbac.CapEditCustomer)).Put("/customers/{id}", h.UpdateCustomer)
			r.With(gate(rbac.CapDeleteCustomer)).Delete("/customers/{id}", h.DeleteCustomer)

			r.With(gate(rbac.CapViewOrders)).Get("/customers/{id}/orders", h.ListCustomerOrders)
			r.With(gate(rbac.CapCreateOrder)).Post("/customers/{id}/orders", h.CreateCustomerOrder)
			r.With(gate(rbac.CapManageCustomerPayments)).Post("/customers/{id}/payments", h.RecordCustomerPayment)

			r.With(gate(rbac.CapViewOrders)).Get("/orders/{id}", h.GetOrder)
			r.With(gate(rbac.CapViewOrders)).Get("/orders/{id}/payments", h.ListOrderPayments)

			r.With(gate(rbac.CapViewProducts)).Get("/products", h.ListProducts)
			r.With(gate(rbac.CapManageProducts)).Post("/products", h.CreateProduct)
		})
	})

	return r
}
