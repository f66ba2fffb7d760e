// Package memory backs the distribution workflow in dev and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/forcedowels/storefront/internal/distribution/app"
	"github.com/forcedowels/storefront/internal/distribution/domain"
)

type RequestStore struct {
	mu       sync.Mutex
	requests []domain.DistributionRequest
	nextID   int64
}

func NewRequestStore() *RequestStore {
	return &RequestStore{nextID: 1}
}

func (s *RequestStore) Create(_ context.Context, req domain.DistributionRequest) (domain.DistributionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.nextID
	req.CreatedAt = time.Now().UTC()
	s.nextID++
	s.requests = append(s.requests, req)
	return req, nil
}

func (s *RequestStore) GetByUniqueID(_ context.Context, uniqueID string) (domain.DistributionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.UniqueID == uniqueID {
			return r, nil
		}
	}
	return domain.DistributionRequest{}, app.ErrRequestNotFound
}

// Respond holds the lock across the pending check and the write, so replayed
// link clicks cannot both transition the request.
func (s *RequestStore) Respond(_ context.Context, uniqueID, status string, respondedAt time.Time) (domain.DistributionRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].UniqueID != uniqueID {
			continue
		}
		if s.requests[i].Status != domain.StatusPending {
			return s.requests[i], false, nil
		}
		s.requests[i].Status = status
		s.requests[i].RespondedAt = &respondedAt
		return s.requests[i], true, nil
	}
	return domain.DistributionRequest{}, false, app.ErrRequestNotFound
}

type DistributorStore struct {
	mu           sync.Mutex
	distributors []domain.Distributor
	nextID       int64
}

func NewDistributorStore() *DistributorStore {
	return &DistributorStore{nextID: 1}
}

func (s *DistributorStore) Create(_ context.Context, d domain.Distributor) (domain.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.nextID
	d.CreatedAt = time.Now().UTC()
	s.nextID++
	s.distributors = append(s.distributors, d)
	return d, nil
}

// All returns a snapshot, for tests.
func (s *DistributorStore) All() []domain.Distributor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Distributor, len(s.distributors))
	copy(out, s.distributors)
	return out
}
