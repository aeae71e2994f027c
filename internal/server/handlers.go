package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rooherbals/backend/internal/middleware"
	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/service"
)

// Handler holds the services the HTTP surface dispatches to.
type Handler struct {
	auth      *service.AuthService
	customers *service.CustomerService
	orders    *service.OrderService
	payments  *service.PaymentService
	products  *service.ProductService
}

// NewHandler creates a Handler over the given services.
func NewHandler(
	auth *service.AuthService,
	customers *service.CustomerService,
	orders *service.OrderService,
	payments *service.PaymentService,
	products *service.ProductService,
) *Handler {
	return &Handler{
		auth:      auth,
		customers: customers,
		orders:    orders,
		payments:  payments,
		products:  products,
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// Register creates a staff account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.FullName, req.Password, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapUser(user))
}

// Login authenticates and returns a session token with the caller's
// capability tokens.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:        session.Token,
		User:         mapUser(session.User),
		Capabilities: session.Capabilities,
	})
}

// ListCustomers returns all customers with derived credit status.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, mapCustomer(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateCustomer registers a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decode(w, r, &req) {
		return
	}

	customer := &models.Customer{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
		Area:        req.Area,
	}
	if err := h.customers.CreateCustomer(r.Context(), customer); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCustomer(customer))
}

// GetCustomer returns one customer with derived credit status.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(customer))
}

// UpdateCustomer applies changes to a customer's details.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decode(w, r, &req) {
		return
	}

	customer := &models.Customer{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
		Area:        req.Area,
	}
	if err := h.customers.UpdateCustomer(r.Context(), customer); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(customer))
}

// DeleteCustomer removes a customer and their history.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ListCustomerOrders returns a customer's orders with recomputed balances.
// ?status=pending selects the payment-picker view, which excludes orders by
// recorded payment status.
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	pendingOnly := r.URL.Query().Get("status") == "pending"

	orders, err := h.orders.ListCustomerOrders(r.Context(), chi.URLParam(r, "id"), pendingOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, mapOrder(order))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateCustomerOrder records a new order for a customer.
func (h *Handler) CreateCustomerOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decode(w, r, &req) {
		return
	}

	order := &models.Order{
		CustomerID: chi.URLParam(r, "id"),
		Total:      req.Total.Float64(),
		CreatedBy:  middleware.GetUserID(r.Context()),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Float64(),
		})
	}
	if err := h.orders.CreateOrder(r.Context(), order); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrder(order))
}

// RecordCustomerPayment records a payment against one of the customer's
// orders, applying the overpayment submission guard.
func (h *Handler) RecordCustomerPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if !decode(w, r, &req) {
		return
	}

	payment, err := h.payments.RecordPayment(r.Context(), service.RecordPaymentInput{
		CustomerID:         chi.URLParam(r, "id"),
		OrderID:            req.OrderID,
		Amount:             req.Amount,
		Method:             models.PaymentMethod(req.PaymentMethod),
		ReferenceNumber:    deref(req.ReferenceNumber),
		Notes:              deref(req.Notes),
		ReceivedBy:         deref(req.ReceivedBy),
		ConfirmOverpayment: req.ConfirmOverpayment,
		RecordedBy:         middleware.GetUserID(r.Context()),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapPayment(payment))
}

// GetOrder returns one order with items, payments, and recomputed balance.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order))
}

// ListOrderPayments returns the payments recorded against an order.
func (h *Handler) ListOrderPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.orders.ListOrderPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, mapPayment(&payments[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
