package app

import (
	"context"
	"strings"

	"github.com/forcedowels/storefront/internal/apperr"
	"github.com/forcedowels/storefront/internal/order/domain"
)

type Service struct {
	store OrderStore
}

func NewService(store OrderStore) *Service {
	return &Service{store: store}
}

func (s *Service) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (domain.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Order{}, apperr.New(apperr.Invalid, "userId is required")
	}
	if in.Quantity <= 0 {
		return domain.Order{}, apperr.Newf(apperr.Invalid, "quantity must be positive, got %d", in.Quantity)
	}
	if in.TotalCents < 0 {
		return domain.Order{}, apperr.Newf(apperr.Invalid, "total cannot be negative, got %d", in.TotalCents)
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusUnpaid
	}

	order := domain.Order{
		UserID:          in.UserID,
		UserEmail:       in.UserEmail,
		UserName:        in.UserName,
		Quantity:        in.Quantity,
		Tier:            in.Tier,
		TotalCents:      in.TotalCents,
		Status:          domain.StatusForPayment(paymentStatus),
		PaymentStatus:   paymentStatus,
		StripeSessionID: in.StripeSessionID,
		ShippingInfo:    in.ShippingInfo,
		BillingInfo:     in.BillingInfo,
	}

	created, err := s.store.Create(ctx, order)
	if err != nil {
		return domain.Order{}, apperr.Wrap(apperr.Internal, "create order", err)
	}
	return created, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.New(apperr.Invalid, "userId is required")
	}

	orders, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list orders", err)
	}
	return orders, nil
}

// MarkSessionPayment reconciles a provider payment status into every order
// row of the session. Zero affected rows is reported to the caller, who
// decides whether that is fatal.
func (s *Service) MarkSessionPayment(ctx context.Context, sessionID, paymentStatus string) (int64, error) {
	if sessionID == "" {
		return 0, apperr.New(apperr.Invalid, "session id is required")
	}

	n, err := s.store.UpdatePaymentStatusBySession(ctx, sessionID, paymentStatus)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "update payment status", err)
	}
	return n, nil
}
