package server

import (
	"github.com/rooherbals/backend/internal/ledger"
	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/rbac"
)

// Request payloads. Currency fields are ledger.Amount: upstream clients are
// inconsistent about number-vs-string JSON typing, and malformed values
// degrade to zero instead of failing the decode.

type registerRequest struct {
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Password string    `json:"password"`
	Role     rbac.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Area        string `json:"area"`
}

type orderItemRequest struct {
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	UnitPrice ledger.Amount `json:"unit_price"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
	Total ledger.Amount      `json:"total"`
}

type recordPaymentRequest struct {
	OrderID            string        `json:"order_id"`
	Amount             ledger.Amount `json:"amount"`
	PaymentMethod      string        `json:"payment_method"`
	ReferenceNumber    *string       `json:"reference_number"`
	Notes              *string       `json:"notes"`
	ReceivedBy         *string       `json:"received_by"`
	ConfirmOverpayment bool          `json:"confirm_overpayment"`
}

// Response payloads. Amounts marshal as plain JSON numbers.

type sessionResponse struct {
	Token        string            `json:"token"`
	User         userResponse      `json:"user"`
	Capabilities []rbac.Capability `json:"capabilities"`
}

type userResponse struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     rbac.Role `json:"role"`
}

type customerResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ContactName  string              `json:"contact_name"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Area         string              `json:"area"`
	CreditStatus models.CreditStatus `json:"credit_status"`
	CreatedAt    int64               `json:"created_at"`
}

type orderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Total      float64 `json:"total"`
	// PaymentStatus is the server-recorded status; listing policy gates
	// on it.
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	// TotalPaid and RemainingBalance are recomputed from the loaded
	// payments, the values payment forms pre-fill from.
	TotalPaid        float64             `json:"total_paid"`
	RemainingBalance float64             `json:"remaining_balance"`
	Items            []orderItemResponse `json:"items,omitempty"`
	Payments         []paymentResponse   `json:"payments,omitempty"`
	CreatedAt        int64               `json:"created_at"`
}

type paymentResponse struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	CustomerID      string  `json:"customer_id"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	ReferenceNumber *string `json:"reference_number"`
	Notes           *string `json:"notes"`
	ReceivedBy      *string `json:"received_by"`
	RecordedBy      string  `json:"recorded_by"`
	CreatedAt       int64   `json:"created_at"`
}

type productResponse struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

func mapUser(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

func mapCustomer(customer *models.Customer) customerResponse {
	return customerResponse{
		ID:           customer.ID,
		Name:         customer.Name,
		ContactName:  customer.ContactName,
		Phone:        customer.Phone,
		Address:      customer.Address,
		Area:         customer.Area,
		CreditStatus: customer.CreditStatus,
		CreatedAt:    customer.CreatedAt,
	}
}

func mapOrder(order *models.Order) orderResponse {
	rec := ledger.Reconcile(ledger.Amount(order.Total), order.PaymentAmounts())

	resp := orderResponse{
		ID:               order.ID,
		CustomerID:       order.CustomerID,
		Total:            order.Total,
		PaymentStatus:    order.PaymentStatus,
		TotalPaid:        rec.Paid.Float64(),
		RemainingBalance: rec.Remaining.Float64(),
		CreatedAt:        order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	for i := range order.Payments {
		resp.Payments = append(resp.Payments, mapPayment(&order.Payments[i]))
	}
	return resp
}

func mapPayment(payment *models.Payment) paymentResponse {
	return paymentResponse{
		ID:              payment.ID,
		OrderID:         payment.OrderID,
		CustomerID:      payment.CustomerID,
		Amount:          payment.Amount,
		PaymentMethod:   string(payment.Method),
		ReferenceNumber: optional(payment.ReferenceNumber),
		Notes:           optional(payment.Notes),
		ReceivedBy:      optional(payment.ReceivedBy),
		RecordedBy:      payment.RecordedBy,
		CreatedAt:       payment.CreatedAt,
	}
}

func mapProduct(product *models.Product) productResponse {
	return productResponse{
		ID:        product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
	}
}

// optional maps an empty string to JSON null, matching the wire contract
// where absent reference numbers and notes are null, not "".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
