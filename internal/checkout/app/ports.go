package app

import (
	"context"

	"github.com/forcedowels/storefront/internal/checkout/domain"
)

// ProviderLineItem is one display line on the provider's hosted page.
// AmountCents is the unit amount in the provider's integer unit.
type ProviderLineItem struct {
	Name        string
	AmountCents int64
	Quantity    int64
}

type ProviderSessionRequest struct {
	CustomerEmail string
	LineItems     []ProviderLineItem
	Metadata      map[string]string
}

type PaymentProvider interface {
	CreateSession(ctx context.Context, req ProviderSessionRequest) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
}
