package app

import (
	"context"

	"github.com/forcedowels/storefront/internal/order/domain"
)

type OrderStore interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdatePaymentStatusBySession updates every row sharing the checkout
	// session id as one atomic unit and returns how many rows it
	// transitioned. Rows already carrying the status are left untouched, so
	// a redelivered update reports zero.
	UpdatePaymentStatusBySession(ctx context.Context, sessionID, paymentStatus string) (int64, error)
}
