package app

import (
	"context"
	"errors"
	"time"

	"github.com/forcedowels/storefront/internal/distribution/domain"
)

// ErrRequestNotFound is returned by stores for an unknown unique id.
// Declared here so both backends share one sentinel.
var ErrRequestNotFound = errors.New("distribution request not found")

type RequestStore interface {
	Create(ctx context.Context, req domain.DistributionRequest) (domain.DistributionRequest, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (domain.DistributionRequest, error)
	// Respond transitions the request to status iff it is still pending and
	// stamps respondedAt. It returns the request as stored afterwards and
	// whether this call performed the transition; a pending guard that fails
	// on a replayed link returns the already-settled request with false.
	Respond(ctx context.Context, uniqueID, status string, respondedAt time.Time) (domain.DistributionRequest, bool, error)
}

type DistributorStore interface {
	Create(ctx context.Context, d domain.Distributor) (domain.Distributor, error)
}
