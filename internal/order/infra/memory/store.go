// Package memory is the development and test order store. Single instance
// only; durable deployments use the postgres store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/forcedowels/storefront/internal/order/domain"
)

type Store struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int64
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	order.ID = s.nextID
	order.CreatedAt = now
	order.UpdatedAt = now
	s.nextID++

	s.orders = append(s.orders, order)
	return order, nil
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) UpdatePaymentStatusBySession(_ context.Context, sessionID, paymentStatus string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for i := range s.orders {
		if s.orders[i].StripeSessionID != sessionID {
			continue
		}
		if s.orders[i].PaymentStatus == paymentStatus {
			continue
		}
		s.orders[i].PaymentStatus = paymentStatus
		s.orders[i].Status = domain.StatusForPayment(paymentStatus)
		s.orders[i].UpdatedAt = now
		n++
	}
	return n, nil
}
