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

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `id, educator_id, title, description, price, discount, thumbnail_key, published, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.EducatorID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.Discount,
		&course.ThumbnailKey,
		&course.Published,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	query := `
		INSERT INTO courses (
			id, educator_id, title, description, price, discount,
			thumbnail_key, published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var returnedID uuid.UUID
	err := r.db.QueryRow(
		ctx,
		query,
		course.ID,
		course.EducatorID,
		course.Title,
		course.Description,
		course.Price,
		course.Discount,
		course.ThumbnailKey,
		course.Published,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&returnedID)
	if err != nil {
		return uuid.Nil, err
	}
	return returnedID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error) {
	query := `
		UPDATE courses
		   SET title       = COALESCE($2, title),
		       description = COALESCE($3, description),
		       price       = COALESCE($4, price),
		       discount    = COALESCE($5, discount),
		       updated_at  = NOW()
		 WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(ctx, query, id, upd.Title, upd.Description, upd.Price, upd.Discount))
}

func (r *CoursePostgres) UpdateThumbnail(ctx context.Context, id uuid.UUID, objectKey string) error {
	query := `UPDATE courses SET thumbnail_key = $2, updated_at = NOW() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, objectKey)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `UPDATE courses SET published = $2, updated_at = NOW() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, published)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes the course and its nested content as one unit.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM lecture_progress WHERE course_id = $1`,
		`DELETE FROM course_ratings WHERE course_id = $1`,
		`DELETE FROM lectures WHERE course_id = $1`,
		`DELETE FROM chapters WHERE course_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return tx.Commit(ctx)
}

func (r *CoursePostgres) ListPublished(ctx context.Context, limit int, offset int) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		  FROM courses
		 WHERE published = TRUE
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query published courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

func (r *CoursePostgres) CountPublished(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE published = TRUE`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count published courses: %w", err)
	}
	return total, nil
}

func (r *CoursePostgres) ListByEducator(ctx context.Context, educatorID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		  FROM courses
		 WHERE educator_id = $1
		 ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, educatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query educator courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

func collectCourses(rows pgx.Rows) ([]models.Course, error) {
	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.EducatorID, &c.Title, &c.Description, &c.Price, &c.Discount,
			&c.ThumbnailKey, &c.Published, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
