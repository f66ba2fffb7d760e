package domain

import (
	cart "github.com/forcedowels/storefront/internal/cart/domain"
	order "github.com/forcedowels/storefront/internal/order/domain"
)

// Contact identifies the buyer. Guest checkouts carry inline contact info and
// no user id.
type Contact struct {
	UserID string
	Email  string
	Name   string
	Guest  bool
}

type CheckoutRequest struct {
	Contact       Contact
	Items         []cart.CartItem
	Shipping      order.Address
	Billing       order.Address
	ShippingCents int64
	TaxCents      int64
}

// Session mirrors the provider-hosted checkout record. Metadata carries the
// order summary written at session creation so reconciliation can act on a
// webhook payload alone.
type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	CustomerEmail string
	Metadata      map[string]string
}

const (
	SessionPaymentPaid   = "paid"
	SessionPaymentUnpaid = "unpaid"
)
