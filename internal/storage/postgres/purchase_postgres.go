package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
)

type PurchasePostgres struct {
	db *pgxpool.Pool
}

func NewPurchasePostgres(db *pgxpool.Pool) *PurchasePostgres {
	return &PurchasePostgres{db: db}
}

func (r *PurchasePostgres) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	now := time.Now().UTC()
	purchase.CreatedAt = now
	purchase.UpdatedAt = now
	purchase.Status = models.PurchasePending

	query := `
		INSERT INTO purchases (id, user_id, course_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		purchase.ID, purchase.UserID, purchase.CourseID,
		purchase.Amount, purchase.Status, purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *PurchasePostgres) PurchaseByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	query := `
		SELECT id, user_id, course_id, amount, status, created_at, updated_at
		  FROM purchases
		 WHERE id = $1
	`
	p := &models.Purchase{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.CourseID, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrPurchaseNotFound
		}
		return nil, err
	}
	return p, nil
}

// CompleteAndEnroll flips a pending purchase to completed and inserts the
// enrollment in the same transaction. The status guard makes redelivered
// success events no-ops: applied=false means the purchase was already
// terminal and nothing changed.
func (r *PurchasePostgres) CompleteAndEnroll(ctx context.Context, purchaseID uuid.UUID) (applied bool, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var userID, courseID uuid.UUID
	var status string
	lock := `SELECT user_id, course_id, status FROM purchases WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRow(ctx, lock, purchaseID).Scan(&userID, &courseID, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, app_errors.ErrPurchaseNotFound
		}
		return false, err
	}
	if status != models.PurchasePending {
		return false, nil
	}

	enroll := `
		INSERT INTO enrollments (course_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, enroll, courseID, userID, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("failed to enroll student: %w", err)
	}

	complete := `
		UPDATE purchases SET status = $2, updated_at = NOW()
		 WHERE id = $1 AND status = $3
	`
	cmdTag, err := tx.Exec(ctx, complete, purchaseID, models.PurchaseCompleted, models.PurchasePending)
	if err != nil {
		return false, fmt.Errorf("failed to complete purchase: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// MarkFailed flips a pending purchase to failed; terminal purchases are left
// untouched.
func (r *PurchasePostgres) MarkFailed(ctx context.Context, purchaseID uuid.UUID) (applied bool, err error) {
	query := `
		UPDATE purchases SET status = $2, updated_at = NOW()
		 WHERE id = $1 AND status = $3
	`
	cmdTag, err := r.db.Exec(ctx, query, purchaseID, models.PurchaseFailed, models.PurchasePending)
	if err != nil {
		return false, fmt.Errorf("failed to mark purchase failed: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SumCompletedByEducator is the ledger-accurate earnings figure: the sum of
// amounts actually charged, frozen at purchase time.
func (r *PurchasePostgres) SumCompletedByEducator(ctx context.Context, educatorID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		  FROM purchases p
		 INNER JOIN courses c ON c.id = p.course_id
		 WHERE c.educator_id = $1 AND p.status = $2
	`
	var total float64
	if err := r.db.QueryRow(ctx, query, educatorID, models.PurchaseCompleted).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum educator earnings: %w", err)
	}
	return total, nil
}
