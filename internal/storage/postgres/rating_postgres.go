package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
)

type RatingPostgres struct {
	db *pgxpool.Pool
}

func NewRatingPostgres(db *pgxpool.Pool) *RatingPostgres {
	return &RatingPostgres{db: db}
}

// UpsertRating stores one rating per (course, student); resubmitting replaces
// the previous value.
func (r *RatingPostgres) UpsertRating(ctx context.Context, courseID, userID uuid.UUID, value int) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO course_ratings (course_id, user_id, rating, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (course_id, user_id) DO UPDATE SET rating = EXCLUDED.rating
	`
	if _, err := r.db.Exec(ctx, query, courseID, userID, value, now); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

func (r *RatingPostgres) RatingsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Rating, error) {
	query := `SELECT user_id, rating FROM course_ratings WHERE course_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(&rating.UserID, &rating.Value); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
