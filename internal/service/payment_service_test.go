package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/storage"
	"github.com/rooherbals/backend/internal/storage/sqlite"
)

// newTestStore creates a temp-file SQLite store for service tests.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "rooherbals-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedCustomerAndOrder(t *testing.T, store storage.Store, total float64) (*models.Customer, *models.Order) {
	t.Helper()
	ctx := context.Background()

	customer := &models.Customer{Name: "Galle Stores"}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	order := &models.Order{CustomerID: customer.ID, Total: total}
	if err := store.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return customer, order
}

func TestRecordPaymentValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	ctx := context.Background()
	_, order := seedCustomerAndOrder(t, store, 1000)

	tests := []struct {
		name  string
		input RecordPaymentInput
	}{
		{"missing order", RecordPaymentInput{Amount: 100, Method: models.MethodCash}},
		{"zero amount", RecordPaymentInput{OrderID: order.ID, Amount: 0, Method: models.MethodCash}},
		{"negative amount", RecordPaymentInput{OrderID: order.ID, Amount: -5, Method: models.MethodCash}},
		{"bad method", RecordPaymentInput{OrderID: order.ID, Amount: 100, Method: "card"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordPayment(ctx, tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRecordPaymentUnknownOrder(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		OrderID: "nonexistent",
		Amount:  100,
		Method:  models.MethodCash,
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordPaymentWrongCustomer(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	ctx := context.Background()
	_, order := seedCustomerAndOrder(t, store, 1000)

	other := &models.Customer{Name: "Matara Traders"}
	if err := store.CreateCustomer(ctx, other); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	_, err := svc.RecordPayment(ctx, RecordPaymentInput{
		CustomerID: other.ID,
		OrderID:    order.ID,
		Amount:     100,
		Method:     models.MethodCash,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for mismatched customer, got %v", err)
	}
}

func TestRecordPaymentOverpaymentGuard(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	ctx := context.Background()
	customer, order := seedCustomerAndOrder(t, store, 1000)

	// Partial payment brings the remaining balance to 349.50.
	if _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		CustomerID: customer.ID,
		OrderID:    order.ID,
		Amount:     650.50,
		Method:     models.MethodCash,
		RecordedBy: "user-1",
	}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	t.Run("exceeding amount warns instead of rejecting or accepting", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, RecordPaymentInput{
			CustomerID: customer.ID,
			OrderID:    order.ID,
			Amount:     400,
			Method:     models.MethodCash,
		})

		var overpay *OverpaymentError
		if !errors.As(err, &overpay) {
			t.Fatalf("expected OverpaymentError, got %v", err)
		}
		if overpay.Remaining != 349.50 {
			t.Errorf("Remaining = %v, want 349.50", overpay.Remaining)
		}
		if overpay.Amount != 400 {
			t.Errorf("Amount = %v, want 400", overpay.Amount)
		}

		// The warned submission must not have been recorded.
		payments, err := store.ListOrderPayments(ctx, order.ID)
		if err != nil {
			t.Fatalf("ListOrderPayments failed: %v", err)
		}
		if len(payments) != 1 {
			t.Errorf("payments recorded = %d, want 1", len(payments))
		}
	})

	t.Run("exact remaining balance passes without confirmation", func(t *testing.T) {
		payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
			CustomerID: customer.ID,
			OrderID:    order.ID,
			Amount:     349.50,
			Method:     models.MethodCheque,
		})
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if payment.Amount != 349.50 {
			t.Errorf("Amount = %v, want 349.50", payment.Amount)
		}

		got, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got.PaymentStatus != models.PaymentPaid {
			t.Errorf("PaymentStatus = %q, want paid", got.PaymentStatus)
		}
	})

	t.Run("confirmed overpayment submits the original amount unmodified", func(t *testing.T) {
		payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
			CustomerID:         customer.ID,
			OrderID:            order.ID,
			Amount:             25,
			Method:             models.MethodCash,
			ConfirmOverpayment: true,
		})
		if err != nil {
			t.Fatalf("confirmed overpayment failed: %v", err)
		}
		if payment.Amount != 25 {
			t.Errorf("Amount = %v, want the original 25", payment.Amount)
		}

		got, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got.Remaining() != -25 {
			t.Errorf("Remaining = %v, want -25", got.Remaining())
		}
		// Overpaid orders stay recorded as paid.
		if got.PaymentStatus != models.PaymentPaid {
			t.Errorf("PaymentStatus = %q, want paid", got.PaymentStatus)
		}
	})
}
