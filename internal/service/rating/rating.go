package rating

import (
	"context"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
}

type ratingRepo interface {
	UpsertRating(ctx context.Context, courseID, userID uuid.UUID, value int) error
}

type RatingService struct {
	log            logger.Log
	enrollmentRepo enrollmentRepo
	ratingRepo     ratingRepo
}

func NewRatingService(log logger.Log, enrollmentRepo enrollmentRepo, ratingRepo ratingRepo) *RatingService {
	return &RatingService{
		log:            log,
		enrollmentRepo: enrollmentRepo,
		ratingRepo:     ratingRepo,
	}
}

// Rate stores a 1..5 rating from an enrolled student. One rating per student
// per course; rating again replaces the old value.
func (s *RatingService) Rate(ctx context.Context, userID, courseID uuid.UUID, value int) error {
	if value < 1 || value > 5 {
		return app_errors.ErrInvalidRating
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return app_errors.ErrNotEnrolled
	}

	return s.ratingRepo.UpsertRating(ctx, courseID, userID, value)
}
