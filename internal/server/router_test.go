package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/service"
	"github.com/rooherbals/backend/internal/storage/sqlite"
)

// setupTestServer starts the full router over a temp SQLite database and
// returns a ready-to-use base URL.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "rooherbals-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-for-router-tests", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := NewHandler(
		service.NewAuthService(authenticator, jwtManager),
		service.NewCustomerService(store, 30*24*time.Hour),
		service.NewOrderService(store),
		service.NewPaymentService(store),
		service.NewProductService(store),
	)

	server := httptest.NewServer(NewRouter(handler, jwtManager))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	// List endpoints return arrays; callers that need them decode separately.
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func doJSONList(t *testing.T, url, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	return resp, decoded
}

// registerAndLogin creates an account with the given role and returns its
// bearer token.
func registerAndLogin(t *testing.T, baseURL, email, role string) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]any{
		"email":     email,
		"full_name": "Test User",
		"password":  "password123",
		"role":      role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestAuthRequired(t *testing.T) {
	server := setupTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/customers", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	errObj, _ := body["error"].(map[string]any)
	if errObj["code"] != "missing_token" {
		t.Errorf("error code = %v, want missing_token", errObj["code"])
	}
}

func TestCapabilityGates(t *testing.T) {
	server := setupTestServer(t)
	driverToken := registerAndLogin(t, server.URL, "driver@rooherbals.lk", "lorry_driver")

	t.Run("lorry driver can view customers", func(t *testing.T) {
		resp, _ := doJSONList(t, server.URL+"/api/customers", driverToken)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("lorry driver cannot add a customer", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, server.URL+"/api/customers", driverToken, map[string]any{
			"name": "Should Not Exist",
		})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
		errObj, _ := body["error"].(map[string]any)
		if errObj["code"] != "forbidden" {
			t.Errorf("error code = %v, want forbidden", errObj["code"])
		}
	})

	t.Run("sales rep cannot delete a customer", func(t *testing.T) {
		repToken := registerAndLogin(t, server.URL, "rep@rooherbals.lk", "sales_rep")
		resp, _ := doJSON(t, http.MethodDelete, server.URL+"/api/customers/any-id", repToken, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})
}

func TestLoginReturnsCapabilities(t *testing.T) {
	server := setupTestServer(t)
	registerAndLogin(t, server.URL, "owner@rooherbals.lk", "owner")

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]any{
		"email":    "owner@rooherbals.lk",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	caps, _ := body["capabilities"].([]any)
	if len(caps) == 0 {
		t.Error("expected owner capabilities in login response")
	}
}

func TestPaymentFlow(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "rep2@rooherbals.lk", "sales_rep")

	// Create a customer and an order worth 1000.
	resp, customer := doJSON(t, http.MethodPost, server.URL+"/api/customers", token, map[string]any{
		"name":  "Colombo Wholesale",
		"phone": "0112345678",
		"area":  "Colombo",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create customer returned %d", resp.StatusCode)
	}
	customerID := customer["id"].(string)

	// Order total arrives as a string, an upstream typing quirk the API
	// must absorb.
	resp, order := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/customers/%s/orders", server.URL, customerID), token,
		map[string]any{"total": "1000"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order returned %d", resp.StatusCode)
	}
	orderID := order["id"].(string)
	if order["remaining_balance"].(float64) != 1000 {
		t.Errorf("remaining_balance = %v, want 1000", order["remaining_balance"])
	}

	paymentsURL := fmt.Sprintf("%s/api/customers/%s/payments", server.URL, customerID)

	t.Run("partial payment with string amount", func(t *testing.T) {
		resp, payment := doJSON(t, http.MethodPost, paymentsURL, token, map[string]any{
			"order_id":         orderID,
			"amount":           "650.50",
			"payment_method":   "cheque",
			"reference_number": "CHQ-2024-001",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("record payment returned %d: %v", resp.StatusCode, payment)
		}
		if payment["amount"].(float64) != 650.50 {
			t.Errorf("amount = %v, want 650.50", payment["amount"])
		}
	})

	t.Run("order reflects recomputed balance and recorded status", func(t *testing.T) {
		resp, got := doJSON(t, http.MethodGet, server.URL+"/api/orders/"+orderID, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get order returned %d", resp.StatusCode)
		}
		if got["remaining_balance"].(float64) != 349.50 {
			t.Errorf("remaining_balance = %v, want 349.50", got["remaining_balance"])
		}
		if got["payment_status"] != "partial" {
			t.Errorf("payment_status = %v, want partial", got["payment_status"])
		}
	})

	t.Run("overpayment warns with remaining balance", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, paymentsURL, token, map[string]any{
			"order_id":       orderID,
			"amount":         400,
			"payment_method": "cash",
		})
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("status = %d, want 409", resp.StatusCode)
		}
		errObj, _ := body["error"].(map[string]any)
		if errObj["code"] != "overpayment_warning" {
			t.Errorf("error code = %v, want overpayment_warning", errObj["code"])
		}
		if errObj["remaining_balance"].(float64) != 349.50 {
			t.Errorf("remaining_balance = %v, want 349.50", errObj["remaining_balance"])
		}
	})

	t.Run("confirmed overpayment is accepted unmodified", func(t *testing.T) {
		resp, payment := doJSON(t, http.MethodPost, paymentsURL, token, map[string]any{
			"order_id":            orderID,
			"amount":              400,
			"payment_method":      "cash",
			"confirm_overpayment": true,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		if payment["amount"].(float64) != 400 {
			t.Errorf("amount = %v, want the original 400", payment["amount"])
		}
	})

	t.Run("paid orders drop out of the pending picker by recorded status", func(t *testing.T) {
		// A second, open order stays visible.
		resp, _ := doJSON(t, http.MethodPost,
			fmt.Sprintf("%s/api/customers/%s/orders", server.URL, customerID), token,
			map[string]any{"total": 250})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create order returned %d", resp.StatusCode)
		}

		resp, all := doJSONList(t,
			fmt.Sprintf("%s/api/customers/%s/orders", server.URL, customerID), token)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list orders returned %d", resp.StatusCode)
		}
		if len(all) != 2 {
			t.Errorf("all orders = %d, want 2", len(all))
		}

		resp, pending := doJSONList(t,
			fmt.Sprintf("%s/api/customers/%s/orders?status=pending", server.URL, customerID), token)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list pending orders returned %d", resp.StatusCode)
		}
		if len(pending) != 1 {
			t.Fatalf("pending orders = %d, want 1", len(pending))
		}
		if pending[0]["total"].(float64) != 250 {
			t.Errorf("pending order total = %v, want 250", pending[0]["total"])
		}
	})

	t.Run("payments listing carries optional fields as null", func(t *testing.T) {
		resp, payments := doJSONList(t, server.URL+"/api/orders/"+orderID+"/payments", token)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list payments returned %d", resp.StatusCode)
		}
		if len(payments) != 2 {
			t.Fatalf("payments = %d, want 2", len(payments))
		}
		refByMethod := make(map[string]any)
		for _, p := range payments {
			refByMethod[p["payment_method"].(string)] = p["reference_number"]
		}
		if refByMethod["cheque"] != "CHQ-2024-001" {
			t.Errorf("cheque reference_number = %v, want CHQ-2024-001", refByMethod["cheque"])
		}
		if refByMethod["cash"] != nil {
			t.Errorf("cash reference_number = %v, want null", refByMethod["cash"])
		}
	})
}

func TestCustomerCreditStatusOverAPI(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "rep3@rooherbals.lk", "sales_rep")

	resp, customer := doJSON(t, http.MethodPost, server.URL+"/api/customers", token, map[string]any{
		"name": "Negombo Depot",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create customer returned %d", resp.StatusCode)
	}
	customerID := customer["id"].(string)
	if customer["credit_status"] != "good" {
		t.Errorf("credit_status = %v, want good", customer["credit_status"])
	}

	resp, _ = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/customers/%s/orders", server.URL, customerID), token,
		map[string]any{"total": 500})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order returned %d", resp.StatusCode)
	}

	resp, got := doJSON(t, http.MethodGet, server.URL+"/api/customers/"+customerID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get customer returned %d", resp.StatusCode)
	}
	if got["credit_status"] != "pending" {
		t.Errorf("credit_status = %v, want pending", got["credit_status"])
	}
}

func TestNotFoundAndValidationMapping(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "rep4@rooherbals.lk", "sales_rep")

	t.Run("unknown order is 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, server.URL+"/api/orders/nonexistent", token, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
		errObj, _ := body["error"].(map[string]any)
		if errObj["code"] != "not_found" {
			t.Errorf("error code = %v, want not_found", errObj["code"])
		}
	})

	t.Run("bad payment method is 400", func(t *testing.T) {
		resp, customer := doJSON(t, http.MethodPost, server.URL+"/api/customers", token, map[string]any{
			"name": "Kurunegala Shop",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create customer returned %d", resp.StatusCode)
		}
		resp, order := doJSON(t, http.MethodPost,
			fmt.Sprintf("%s/api/customers/%s/orders", server.URL, customer["id"]), token,
			map[string]any{"total": 100})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create order returned %d", resp.StatusCode)
		}

		resp, body := doJSON(t, http.MethodPost,
			fmt.Sprintf("%s/api/customers/%s/payments", server.URL, customer["id"]), token,
			map[string]any{
				"order_id":       order["id"],
				"amount":         50,
				"payment_method": "card",
			})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		errObj, _ := body["error"].(map[string]any)
		if errObj["code"] != "validation_error" {
			t.Errorf("error code = %v, want validation_error", errObj["code"])
		}
	})
}
