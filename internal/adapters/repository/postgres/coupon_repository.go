package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) ports.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Save(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		INSERT INTO coupons (title, description, sender_id, recipient_id, created_at, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		coupon.Title, coupon.Description, coupon.SenderID, coupon.RecipientID,
		coupon.CreatedAt, coupon.ExpiresAt, coupon.Status,
	).Scan(&coupon.ID)
	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	query := `
		SELECT id, title, description, sender_id, recipient_id, created_at, expires_at, status, finished_at
		FROM coupons
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return coupon, nil
}

func (r *couponRepository) ListByRecipient(ctx context.Context, userID int64) ([]*domain.Coupon, error) {
	query := `
		SELECT id, title, description, sender_id, recipient_id, created_at, expires_at, status, finished_at
		FROM coupons
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *couponRepository) ListBySender(ctx context.Context, userID int64) ([]*domain.Coupon, error) {
	query := `
		SELECT id, title, description, sender_id, recipient_id, created_at, expires_at, status, finished_at
		FROM coupons
		WHERE sender_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// FinishIfActive is the per-row compare-and-swap behind every terminal
// transition: the WHERE clause loses against any transition that already
// landed, so two racing finishes cannot both report success.
func (r *couponRepository) FinishIfActive(ctx context.Context, id int64, status domain.CouponStatus, finishedAt time.Time) (bool, error) {
	query := `
		UPDATE coupons
		SET status = $2, finished_at = $3
		WHERE id = $1 AND status = 'active'
	`
	res, err := r.db.ExecContext(ctx, query, id, status, finishedAt)
	if err != nil {
		return false, fmt.Errorf("failed to finish coupon: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *couponRepository) list(ctx context.Context, query string, userID int64) ([]*domain.Coupon, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*domain.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}
	return coupons, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row scanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var finishedAt sql.NullTime
	err := row.Scan(
		&coupon.ID, &coupon.Title, &coupon.Description,
		&coupon.SenderID, &coupon.RecipientID,
		&coupon.CreatedAt, &coupon.ExpiresAt,
		&coupon.Status, &finishedAt,
	)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		coupon.FinishedAt = &finishedAt.Time
	}
	return &coupon, nil
}
