package rating_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/rating"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type fakeEnrollmentRepo struct {
	enrolled map[uuid.UUID]bool
}

func (f *fakeEnrollmentRepo) IsEnrolled(_ context.Context, _, userID uuid.UUID) (bool, error) {
	return f.enrolled[userID], nil
}

type ratingKey struct {
	courseID uuid.UUID
	userID   uuid.UUID
}

type fakeRatingRepo struct {
	ratings map[ratingKey]int
}

func (f *fakeRatingRepo) UpsertRating(_ context.Context, courseID, userID uuid.UUID, value int) error {
	f.ratings[ratingKey{courseID, userID}] = value
	return nil
}

func newTestRating(t *testing.T) (*rating.RatingService, *fakeEnrollmentRepo, *fakeRatingRepo) {
	t.Helper()
	enrollmentRepo := &fakeEnrollmentRepo{enrolled: make(map[uuid.UUID]bool)}
	ratingRepo := &fakeRatingRepo{ratings: make(map[ratingKey]int)}
	svc := rating.NewRatingService(logger.New("prod"), enrollmentRepo, ratingRepo)
	return svc, enrollmentRepo, ratingRepo
}

func TestRate_RangeValidation(t *testing.T) {
	svc, enrollmentRepo, _ := newTestRating(t)
	student := uuid.New()
	enrollmentRepo.enrolled[student] = true

	for _, v := range []int{0, -1, 6} {
		if err := svc.Rate(context.Background(), student, uuid.New(), v); !errors.Is(err, app_errors.ErrInvalidRating) {
			t.Errorf("Rate(%d): err = %v, want ErrInvalidRating", v, err)
		}
	}
}

func TestRate_RequiresEnrollment(t *testing.T) {
	svc, _, _ := newTestRating(t)

	err := svc.Rate(context.Background(), uuid.New(), uuid.New(), 5)
	if !errors.Is(err, app_errors.ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestRate_ReplacesPreviousRating(t *testing.T) {
	svc, enrollmentRepo, ratingRepo := newTestRating(t)
	student := uuid.New()
	courseID := uuid.New()
	enrollmentRepo.enrolled[student] = true

	if err := svc.Rate(context.Background(), student, courseID, 3); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if err := svc.Rate(context.Background(), student, courseID, 5); err != nil {
		t.Fatalf("Rate again: %v", err)
	}

	if got := ratingRepo.ratings[ratingKey{courseID, student}]; got != 5 {
		t.Errorf("stored rating = %d, want 5", got)
	}
	if len(ratingRepo.ratings) != 1 {
		t.Errorf("rating rows = %d, want 1", len(ratingRepo.ratings))
	}
}
