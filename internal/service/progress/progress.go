package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type contentRepo interface {
	LectureByID(ctx context.Context, lectureID uuid.UUID) (*models.Lecture, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
}

type progressRepo interface {
	MarkLectureComplete(ctx context.Context, userID, courseID, lectureID uuid.UUID) error
	CompletedLectures(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error)
}

type ProgressService struct {
	log            logger.Log
	contentRepo    contentRepo
	enrollmentRepo enrollmentRepo
	progressRepo   progressRepo
}

func NewProgressService(log logger.Log, contentRepo contentRepo, enrollmentRepo enrollmentRepo, progressRepo progressRepo) *ProgressService {
	return &ProgressService{
		log:            log,
		contentRepo:    contentRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

// MarkComplete records one watched lecture. Re-completing a lecture is a
// no-op, not an error.
func (s *ProgressService) MarkComplete(ctx context.Context, userID, courseID, lectureID uuid.UUID) error {
	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return app_errors.ErrNotEnrolled
	}

	lecture, err := s.contentRepo.LectureByID(ctx, lectureID)
	if err != nil {
		return err
	}
	if lecture.CourseID != courseID {
		return app_errors.ErrLectureNotFound
	}

	return s.progressRepo.MarkLectureComplete(ctx, userID, courseID, lectureID)
}

func (s *ProgressService) CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.Progress, error) {
	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, app_errors.ErrNotEnrolled
	}

	completed, err := s.progressRepo.CompletedLectures(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		completed = []uuid.UUID{}
	}
	return &models.Progress{
		UserID:            userID,
		CourseID:          courseID,
		CompletedLectures: completed,
	}, nil
}
