package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

// MarkLectureComplete is an idempotent set-insert; completing the same
// lecture twice is not an error.
func (r *ProgressPostgres) MarkLectureComplete(ctx context.Context, userID, courseID, lectureID uuid.UUID) error {
	query := `
		INSERT INTO lecture_progress (user_id, course_id, lecture_id, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lecture_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, courseID, lectureID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark lecture complete: %w", err)
	}
	return nil
}

func (r *ProgressPostgres) CompletedLectures(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT lecture_id FROM lecture_progress WHERE user_id = $1 AND course_id = $2`
	rows, err := r.db.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CompletedCountByCourse returns completed-lecture counts keyed by student,
// for the per-course analytics join.
func (r *ProgressPostgres) CompletedCountByCourse(ctx context.Context, courseID uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT user_id, COUNT(*)
		  FROM lecture_progress
		 WHERE course_id = $1
		 GROUP BY user_id
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
