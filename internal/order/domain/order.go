package domain

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"

	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Address is stored as jsonb alongside the order row.
type Address struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Order is one persisted row. A single checkout session fans out into one row
// per line item plus a summary row, all sharing StripeSessionID.
type Order struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"userId"`
	UserEmail       string    `json:"userEmail"`
	UserName        string    `json:"userName"`
	Quantity        int64     `json:"quantity"`
	Tier            string    `json:"tier"`
	TotalCents      int64     `json:"totalCents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	StripeSessionID string    `json:"stripeSessionId,omitempty"`
	ShippingInfo    Address   `json:"shippingInfo"`
	BillingInfo     Address   `json:"billingInfo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateOrderInput struct {
	UserID          string
	UserEmail       string
	UserName        string
	Quantity        int64
	Tier            string
	TotalCents      int64
	PaymentStatus   string
	StripeSessionID string
	ShippingInfo    Address
	BillingInfo     Address
}

// StatusForPayment derives the order status from the provider's payment
// status: "paid" confirms the order, anything else leaves it pending.
func StatusForPayment(paymentStatus string) string {
	if paymentStatus == PaymentStatusPaid {
		return StatusConfirmed
	}
	return StatusPending
}
