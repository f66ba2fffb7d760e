package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/forcedowels/storefront/internal/order/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

const createOrderQuery = `
INSERT INTO orders (
	user_id, user_email, user_name, quantity, tier, total_price,
	status, payment_status, stripe_session_id, shipping_info, billing_info,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
RETURNING id, created_at, updated_at`

func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	shipping, err := json.Marshal(order.ShippingInfo)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal shipping info: %w", err)
	}
	billing, err := json.Marshal(order.BillingInfo)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal billing info: %w", err)
	}

	row := r.db.QueryRowContext(ctx, createOrderQuery,
		order.UserID, order.UserEmail, order.UserName,
		order.Quantity, order.Tier, order.TotalCents,
		order.Status, order.PaymentStatus, nullIfEmpty(order.StripeSessionID),
		shipping, billing,
	)
	if err := row.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

const listByUserQuery = `
SELECT id, user_id, user_email, user_name, quantity, tier, total_price,
	status, payment_status, COALESCE(stripe_session_id, ''),
	shipping_info, billing_info, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY id`

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, listByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var (
			o                 domain.Order
			shipping, billing []byte
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.UserEmail, &o.UserName,
			&o.Quantity, &o.Tier, &o.TotalCents,
			&o.Status, &o.PaymentStatus, &o.StripeSessionID,
			&shipping, &billing, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(shipping, &o.ShippingInfo); err != nil {
			return nil, fmt.Errorf("order %d: shipping info: %w", o.ID, err)
		}
		if err := json.Unmarshal(billing, &o.BillingInfo); err != nil {
			return nil, fmt.Errorf("order %d: billing info: %w", o.ID, err)
		}
		out = append(out, o)
	}

	return out, rows.Err()
}

const updateBySessionQuery = `
UPDATE orders
SET payment_status = $2,
	status = $3,
	updated_at = now()
WHERE stripe_session_id = $1 AND payment_status IS DISTINCT FROM $2`

// UpdatePaymentStatusBySession updates every row of the checkout session in
// one transaction so readers never observe a partially updated session.
// Rows already carrying the status are skipped, which makes the affected
// count reflect actual transitions and keeps webhook redelivery a no-op.
func (r *OrderRepo) UpdatePaymentStatusBySession(ctx context.Context, sessionID, paymentStatus string) (int64, error) {
	var affected int64

	err := r.execTX(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateBySessionQuery,
			sessionID, paymentStatus, domain.StatusForPayment(paymentStatus))
		if err != nil {
			return fmt.Errorf("update session %s: %w", sessionID, err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// DeleteBySession and DeleteAll back the ops cleanup scripts; nothing in the
// request path calls them.
func (r *OrderRepo) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE stripe_session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return res.RowsAffected()
}

func (r *OrderRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE orders RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate orders: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
