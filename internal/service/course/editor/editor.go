package editor

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type contentRepo interface {
	ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
	ChapterByID(ctx context.Context, chapterID uuid.UUID) (*models.Chapter, error)
	LectureByID(ctx context.Context, lectureID uuid.UUID) (*models.Lecture, error)
	MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error)
	MaxLectureOrder(ctx context.Context, chapterID uuid.UUID) (int, error)
	CreateChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error)
	UpdateChapter(ctx context.Context, chapterID uuid.UUID, upd models.ChapterUpdate) (*models.Chapter, error)
	DeleteChapterAndRenumber(ctx context.Context, chapterID, courseID uuid.UUID, chapterOrder int) error
	CreateLecture(ctx context.Context, lecture models.Lecture) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, lectureID uuid.UUID, upd models.LectureUpdate) (*models.Lecture, error)
	DeleteLectureAndRenumber(ctx context.Context, lectureID, chapterID uuid.UUID, lectureOrder int) error
}

// EditorService mutates a course's chapter/lecture tree on behalf of its
// educator. Every operation addresses content by id, never by position, and
// structural changes keep sibling orders contiguous from 1.
type EditorService struct {
	log         logger.Log
	courseRepo  courseRepo
	contentRepo contentRepo
}

func NewEditorService(log logger.Log, courseRepo courseRepo, contentRepo contentRepo) *EditorService {
	return &EditorService{
		log:         log,
		courseRepo:  courseRepo,
		contentRepo: contentRepo,
	}
}

type AddChapterInput struct {
	Title       string
	Description string
}

type AddLectureInput struct {
	Title       string
	Duration    int
	ContentURL  string
	FreePreview bool
}

// ownedCourse loads the course and rejects everyone but its educator.
func (s *EditorService) ownedCourse(ctx context.Context, courseID, educatorID uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.EducatorID != educatorID {
		return nil, app_errors.ErrNotCourseEducator
	}
	return course, nil
}

// chapterInCourse resolves a chapter id and verifies it belongs to the course
// the caller named, so ids from one course cannot address another.
func (s *EditorService) chapterInCourse(ctx context.Context, chapterID, courseID uuid.UUID) (*models.Chapter, error) {
	chapter, err := s.contentRepo.ChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.CourseID != courseID {
		return nil, app_errors.ErrChapterNotFound
	}
	return chapter, nil
}

func (s *EditorService) lectureInChapter(ctx context.Context, lectureID, chapterID uuid.UUID) (*models.Lecture, error) {
	lecture, err := s.contentRepo.LectureByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.ChapterID != chapterID {
		return nil, app_errors.ErrLectureNotFound
	}
	return lecture, nil
}

// Curriculum returns the full ordered content tree, draft or published, for
// the owning educator's editing view.
func (s *EditorService) Curriculum(ctx context.Context, courseID, educatorID uuid.UUID) ([]models.Chapter, error) {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return nil, err
	}
	return s.contentRepo.ChaptersByCourse(ctx, courseID)
}

func (s *EditorService) AddChapter(ctx context.Context, courseID, educatorID uuid.UUID, in AddChapterInput) (*models.Chapter, error) {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}

	maxOrder, err := s.contentRepo.MaxChapterOrder(ctx, courseID)
	if err != nil {
		return nil, err
	}

	chapter := models.Chapter{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Order:       maxOrder + 1,
	}
	return s.contentRepo.CreateChapter(ctx, chapter)
}

func (s *EditorService) UpdateChapter(ctx context.Context, courseID, chapterID, educatorID uuid.UUID, upd models.ChapterUpdate) (*models.Chapter, error) {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return nil, err
	}
	if _, err := s.chapterInCourse(ctx, chapterID, courseID); err != nil {
		return nil, err
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}
	return s.contentRepo.UpdateChapter(ctx, chapterID, upd)
}

// DeleteChapter removes the chapter with every lecture inside it and shifts
// later chapters up so the sequence stays 1..N.
func (s *EditorService) DeleteChapter(ctx context.Context, courseID, chapterID, educatorID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return err
	}
	chapter, err := s.chapterInCourse(ctx, chapterID, courseID)
	if err != nil {
		return err
	}
	return s.contentRepo.DeleteChapterAndRenumber(ctx, chapterID, courseID, chapter.Order)
}

func (s *EditorService) AddLecture(ctx context.Context, courseID, chapterID, educatorID uuid.UUID, in AddLectureInput) (*models.Lecture, error) {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return nil, err
	}
	if _, err := s.chapterInCourse(ctx, chapterID, courseID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}
	if in.Duration <= 0 {
		return nil, app_errors.ErrInvalidDuration
	}
	if strings.TrimSpace(in.ContentURL) == "" {
		return nil, app_errors.ErrMissingContentURL
	}

	maxOrder, err := s.contentRepo.MaxLectureOrder(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	lecture := models.Lecture{
		ChapterID:   chapterID,
		CourseID:    courseID,
		Title:       in.Title,
		Duration:    in.Duration,
		ContentURL:  in.ContentURL,
		FreePreview: in.FreePreview,
		Order:       maxOrder + 1,
	}
	return s.contentRepo.CreateLecture(ctx, lecture)
}

func (s *EditorService) UpdateLecture(ctx context.Context, courseID, chapterID, lectureID, educatorID uuid.UUID, upd models.LectureUpdate) (*models.Lecture, error) {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return nil, err
	}
	if _, err := s.chapterInCourse(ctx, chapterID, courseID); err != nil {
		return nil, err
	}
	if _, err := s.lectureInChapter(ctx, lectureID, chapterID); err != nil {
		return nil, err
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}
	if upd.Duration != nil && *upd.Duration <= 0 {
		return nil, app_errors.ErrInvalidDuration
	}
	if upd.ContentURL != nil && strings.TrimSpace(*upd.ContentURL) == "" {
		return nil, app_errors.ErrMissingContentURL
	}
	return s.contentRepo.UpdateLecture(ctx, lectureID, upd)
}

func (s *EditorService) DeleteLecture(ctx context.Context, courseID, chapterID, lectureID, educatorID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return err
	}
	if _, err := s.chapterInCourse(ctx, chapterID, courseID); err != nil {
		return err
	}
	lecture, err := s.lectureInChapter(ctx, lectureID, chapterID)
	if err != nil {
		return err
	}
	return s.contentRepo.DeleteLectureAndRenumber(ctx, lectureID, chapterID, lecture.Order)
}
