package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
)

// EnrollmentPostgres holds the student<->course link created when a purchase
// completes. Course.EnrolledStudents and a user's enrolled course list are
// both projections of this one table, so the two sides can never diverge.
type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

func (r *EnrollmentPostgres) Enroll(ctx context.Context, courseID, userID uuid.UUID) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO enrollments (course_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, courseID, userID, now)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return app_errors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to enroll: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgres) IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

func (r *EnrollmentPostgres) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = $1`
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (r *EnrollmentPostgres) StudentIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM enrollments WHERE course_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled students: %w", err)
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

func (r *EnrollmentPostgres) StudentsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.avatar_url
		  FROM users u
		 INNER JOIN enrollments e ON e.user_id = u.id
		 WHERE e.course_id = $1
		 ORDER BY e.created_at
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled students: %w", err)
	}
	defer rows.Close()

	var students []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.AvatarURL); err != nil {
			return nil, err
		}
		students = append(students, u)
	}
	return students, rows.Err()
}

func (r *EnrollmentPostgres) CoursesByStudent(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT c.` + "id, c.educator_id, c.title, c.description, c.price, c.discount, c.thumbnail_key, c.published, c.created_at, c.updated_at" + `
		  FROM courses c
		 INNER JOIN enrollments e ON e.course_id = c.id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}
