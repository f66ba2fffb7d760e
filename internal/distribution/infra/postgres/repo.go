package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/forcedowels/storefront/internal/distribution/app"
	"github.com/forcedowels/storefront/internal/distribution/domain"
)

type RequestRepo struct {
	db *sql.DB
}

func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

const createRequestQuery = `
INSERT INTO distribution_requests (
	unique_id, business_name, full_name, email_address, territory,
	city, state, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
RETURNING id, created_at`

func (r *RequestRepo) Create(ctx context.Context, req domain.DistributionRequest) (domain.DistributionRequest, error) {
	row := r.db.QueryRowContext(ctx, createRequestQuery,
		req.UniqueID, req.BusinessName, req.FullName, req.EmailAddress,
		req.Territory, req.City, req.State, req.Status,
	)
	if err := row.Scan(&req.ID, &req.CreatedAt); err != nil {
		return domain.DistributionRequest{}, fmt.Errorf("insert distribution request: %w", err)
	}
	return req, nil
}

const getRequestQuery = `
SELECT id, unique_id, business_name, full_name, email_address, territory,
	COALESCE(city, ''), COALESCE(state, ''), status, responded_at, created_at
FROM distribution_requests
WHERE unique_id = $1`

func (r *RequestRepo) GetByUniqueID(ctx context.Context, uniqueID string) (domain.DistributionRequest, error) {
	return scanRequest(r.db.QueryRowContext(ctx, getRequestQuery, uniqueID))
}

const respondQuery = `
UPDATE distribution_requests
SET status = $2, responded_at = $3
WHERE unique_id = $1 AND status = 'pending'
RETURNING id, unique_id, business_name, full_name, email_address, territory,
	COALESCE(city, ''), COALESCE(state, ''), status, responded_at, created_at`

// Respond relies on the conditional UPDATE for the pending guard: exactly one
// of two racing link clicks gets the row, the other falls through to the
// read and reports the settled state.
func (r *RequestRepo) Respond(ctx context.Context, uniqueID, status string, respondedAt time.Time) (domain.DistributionRequest, bool, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, respondQuery, uniqueID, status, respondedAt))
	if err == nil {
		return req, true, nil
	}
	if !errors.Is(err, app.ErrRequestNotFound) {
		return domain.DistributionRequest{}, false, err
	}

	// No pending row matched: either the request is already settled or the
	// id is unknown.
	existing, err := r.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return domain.DistributionRequest{}, false, err
	}
	return existing, false, nil
}

func scanRequest(row *sql.Row) (domain.DistributionRequest, error) {
	var (
		req         domain.DistributionRequest
		respondedAt sql.NullTime
	)
	err := row.Scan(
		&req.ID, &req.UniqueID, &req.BusinessName, &req.FullName,
		&req.EmailAddress, &req.Territory, &req.City, &req.State,
		&req.Status, &respondedAt, &req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DistributionRequest{}, app.ErrRequestNotFound
	}
	if err != nil {
		return domain.DistributionRequest{}, fmt.Errorf("scan distribution request: %w", err)
	}
	if respondedAt.Valid {
		t := respondedAt.Time
		req.RespondedAt = &t
	}
	return req, nil
}

type DistributorRepo struct {
	db *sql.DB
}

func NewDistributorRepo(db *sql.DB) *DistributorRepo {
	return &DistributorRepo{db: db}
}

const createDistributorQuery = `
INSERT INTO distributors (business_name, contact_name, city, state, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id, created_at`

func (r *DistributorRepo) Create(ctx context.Context, d domain.Distributor) (domain.Distributor, error) {
	row := r.db.QueryRowContext(ctx, createDistributorQuery,
		d.BusinessName, d.ContactName, d.City, d.State, d.IsActive,
	)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		return domain.Distributor{}, fmt.Errorf("insert distributor: %w", err)
	}
	return d, nil
}
