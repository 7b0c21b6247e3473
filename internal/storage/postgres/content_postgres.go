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

// ContentPostgres stores the ordered chapter/lecture tree of a course.
// Order columns are kept dense (1..N per parent) by renumbering inside the
// same transaction as every structural change.
type ContentPostgres struct {
	db *pgxpool.Pool
}

func NewContentPostgres(db *pgxpool.Pool) *ContentPostgres {
	return &ContentPostgres{db: db}
}

const chapterColumns = `id, course_id, title, description, chapter_order, created_at, updated_at`
const lectureColumns = `id, chapter_id, course_id, title, duration_minutes, content_url, free_preview, lecture_order, created_at, updated_at`

func scanChapter(row pgx.Row) (*models.Chapter, error) {
	ch := &models.Chapter{}
	err := row.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Description, &ch.Order, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrChapterNotFound
		}
		return nil, err
	}
	return ch, nil
}

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	l := &models.Lecture{}
	err := row.Scan(&l.ID, &l.ChapterID, &l.CourseID, &l.Title, &l.Duration, &l.ContentURL, &l.FreePreview, &l.Order, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLectureNotFound
		}
		return nil, err
	}
	return l, nil
}

// ChaptersByCourse returns the full content tree ordered by the dense order
// columns, lectures nested under their chapters.
func (r *ContentPostgres) ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	chapterQuery := `
		SELECT ` + chapterColumns + `
		  FROM chapters
		 WHERE course_id = $1
		 ORDER BY chapter_order
	`
	rows, err := r.db.Query(ctx, chapterQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Description, &ch.Order, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, err
		}
		ch.Lectures = []models.Lecture{}
		index[ch.ID] = len(chapters)
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lectureQuery := `
		SELECT ` + lectureColumns + `
		  FROM lectures
		 WHERE course_id = $1
		 ORDER BY lecture_order
	`
	lrows, err := r.db.Query(ctx, lectureQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures: %w", err)
	}
	defer lrows.Close()

	for lrows.Next() {
		var l models.Lecture
		if err := lrows.Scan(&l.ID, &l.ChapterID, &l.CourseID, &l.Title, &l.Duration, &l.ContentURL, &l.FreePreview, &l.Order, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[l.ChapterID]; ok {
			chapters[i].Lectures = append(chapters[i].Lectures, l)
		}
	}
	return chapters, lrows.Err()
}

func (r *ContentPostgres) ChapterByID(ctx context.Context, chapterID uuid.UUID) (*models.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = $1`
	return scanChapter(r.db.QueryRow(ctx, query, chapterID))
}

func (r *ContentPostgres) LectureByID(ctx context.Context, lectureID uuid.UUID) (*models.Lecture, error) {
	query := `SELECT ` + lectureColumns + ` FROM lectures WHERE id = $1`
	return scanLecture(r.db.QueryRow(ctx, query, lectureID))
}

func (r *ContentPostgres) MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(chapter_order), 0) FROM chapters WHERE course_id = $1`
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max chapter order: %w", err)
	}
	return max, nil
}

func (r *ContentPostgres) MaxLectureOrder(ctx context.Context, chapterID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(lecture_order), 0) FROM lectures WHERE chapter_id = $1`
	if err := r.db.QueryRow(ctx, query, chapterID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max lecture order: %w", err)
	}
	return max, nil
}

func (r *ContentPostgres) CreateChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error) {
	now := time.Now().UTC()
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	query := `
		INSERT INTO chapters (id, course_id, title, description, chapter_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		chapter.ID, chapter.CourseID, chapter.Title, chapter.Description,
		chapter.Order, chapter.CreatedAt, chapter.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, fmt.Errorf("chapter order collision: %w", err)
		}
		return nil, err
	}
	chapter.Lectures = []models.Lecture{}
	return &chapter, nil
}

func (r *ContentPostgres) UpdateChapter(ctx context.Context, chapterID uuid.UUID, upd models.ChapterUpdate) (*models.Chapter, error) {
	query := `
		UPDATE chapters
		   SET title       = COALESCE($2, title),
		       description = COALESCE($3, description),
		       updated_at  = NOW()
		 WHERE id = $1
		RETURNING ` + chapterColumns
	return scanChapter(r.db.QueryRow(ctx, query, chapterID, upd.Title, upd.Description))
}

// DeleteChapterAndRenumber removes the chapter with its lectures and closes
// the gap so sibling orders stay exactly 1..N.
func (r *ContentPostgres) DeleteChapterAndRenumber(ctx context.Context, chapterID, courseID uuid.UUID, chapterOrder int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM lecture_progress WHERE lecture_id IN (SELECT id FROM lectures WHERE chapter_id = $1)`, chapterID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM lectures WHERE chapter_id = $1`, chapterID); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, chapterID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrChapterNotFound
	}

	renumber := `
		UPDATE chapters SET chapter_order = chapter_order - 1
		 WHERE course_id = $1 AND chapter_order > $2
	`
	if _, err := tx.Exec(ctx, renumber, courseID, chapterOrder); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ContentPostgres) CreateLecture(ctx context.Context, lecture models.Lecture) (*models.Lecture, error) {
	now := time.Now().UTC()
	if lecture.ID == uuid.Nil {
		lecture.ID = uuid.New()
	}
	lecture.CreatedAt = now
	lecture.UpdatedAt = now

	query := `
		INSERT INTO lectures (
			id, chapter_id, course_id, title, duration_minutes,
			content_url, free_preview, lecture_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		lecture.ID, lecture.ChapterID, lecture.CourseID, lecture.Title, lecture.Duration,
		lecture.ContentURL, lecture.FreePreview, lecture.Order, lecture.CreatedAt, lecture.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, fmt.Errorf("lecture order collision: %w", err)
		}
		return nil, err
	}
	return &lecture, nil
}

func (r *ContentPostgres) UpdateLecture(ctx context.Context, lectureID uuid.UUID, upd models.LectureUpdate) (*models.Lecture, error) {
	query := `
		UPDATE lectures
		   SET title            = COALESCE($2, title),
		       duration_minutes = COALESCE($3, duration_minutes),
		       content_url      = COALESCE($4, content_url),
		       free_preview     = COALESCE($5, free_preview),
		       updated_at       = NOW()
		 WHERE id = $1
		RETURNING ` + lectureColumns
	return scanLecture(r.db.QueryRow(ctx, query, lectureID, upd.Title, upd.Duration, upd.ContentURL, upd.FreePreview))
}

func (r *ContentPostgres) DeleteLectureAndRenumber(ctx context.Context, lectureID, chapterID uuid.UUID, lectureOrder int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM lecture_progress WHERE lecture_id = $1`, lectureID); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM lectures WHERE id = $1`, lectureID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLectureNotFound
	}

	renumber := `
		UPDATE lectures SET lecture_order = lecture_order - 1
		 WHERE chapter_id = $1 AND lecture_order > $2
	`
	if _, err := tx.Exec(ctx, renumber, chapterID, lectureOrder); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LectureCountByCourse is used by dashboards for completion percentages.
func (r *ContentPostgres) LectureCountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lectures WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lectures: %w", err)
	}
	return count, nil
}
