package app

import (
	"context"
	"testing"

	"github.com/forcedowels/storefront/internal/apperr"
	"github.com/forcedowels/storefront/internal/order/domain"
	"github.com/forcedowels/storefront/internal/order/infra/memory"
)

func TestCreateOrderDerivesStatus(t *testing.T) {
	svc := NewService(memory.New())

	t.Run("paid -> confirmed", func(t *testing.T) {
		o, err := svc.CreateOrder(context.Background(), domain.CreateOrderInput{
			UserID:        "user-1",
			Quantity:      5000,
			Tier:          "5,000-20,000",
			TotalCents:    36000,
			PaymentStatus: "paid",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if o.Status != domain.StatusConfirmed {
			t.Fatalf("expected confirmed, got %q", o.Status)
		}
	})

	t.Run("omitted payment status -> pending", func(t *testing.T) {
		o, err := svc.CreateOrder(context.Background(), domain.CreateOrderInput{
			UserID:     "user-1",
			Quantity:   5000,
			TotalCents: 36000,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if o.Status != domain.StatusPending {
			t.Fatalf("expected pending, got %q", o.Status)
		}
		if o.PaymentStatus != domain.PaymentStatusUnpaid {
			t.Fatalf("expected unpaid, got %q", o.PaymentStatus)
		}
	})
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(memory.New())

	cases := []struct {
		name string
		in   domain.CreateOrderInput
	}{
		{"missing user", domain.CreateOrderInput{Quantity: 10, TotalCents: 100}},
		{"zero quantity", domain.CreateOrderInput{UserID: "u", TotalCents: 100}},
		{"negative total", domain.CreateOrderInput{UserID: "u", Quantity: 10, TotalCents: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tc.in)
			if !apperr.IsKind(err, apperr.Invalid) {
				t.Fatalf("expected invalid, got %v", err)
			}
		})
	}
}

func TestListOrdersScopedToUser(t *testing.T) {
	svc := NewService(memory.New())

	for _, user := range []string{"alice", "alice", "bob"} {
		if _, err := svc.CreateOrder(context.Background(), domain.CreateOrderInput{
			UserID: user, Quantity: 5000, TotalCents: 36000,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	orders, err := svc.ListOrders(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", len(orders))
	}
	for _, o := range orders {
		if o.UserID != "alice" {
			t.Fatalf("leaked order for %q", o.UserID)
		}
	}
}

func TestMarkSessionPaymentRequiresSessionID(t *testing.T) {
	svc := NewService(memory.New())

	if _, err := svc.MarkSessionPayment(context.Background(), "", "paid"); !apperr.IsKind(err, apperr.Invalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}
