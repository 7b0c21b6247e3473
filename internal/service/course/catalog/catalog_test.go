package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/catalog"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) ListPublished(_ context.Context, limit, offset int) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.Published {
			out = append(out, *c)
		}
	}
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCourseRepo) CountPublished(_ context.Context) (int, error) {
	n := 0
	for _, c := range f.courses {
		if c.Published {
			n++
		}
	}
	return n, nil
}

type fakeContentRepo struct {
	chapters map[uuid.UUID][]models.Chapter
}

func (f *fakeContentRepo) ChaptersByCourse(_ context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	return f.chapters[courseID], nil
}

type fakeEnrollmentRepo struct {
	enrolled map[uuid.UUID][]uuid.UUID
}

func (f *fakeEnrollmentRepo) StudentIDsByCourse(_ context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	return f.enrolled[courseID], nil
}

func (f *fakeEnrollmentRepo) CoursesByStudent(_ context.Context, _ uuid.UUID) ([]models.Course, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) IsEnrolled(_ context.Context, courseID, userID uuid.UUID) (bool, error) {
	for _, id := range f.enrolled[courseID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRatingRepo struct {
	ratings map[uuid.UUID][]models.Rating
}

func (f *fakeRatingRepo) RatingsByCourse(_ context.Context, courseID uuid.UUID) ([]models.Rating, error) {
	return f.ratings[courseID], nil
}

type fakeSearchRepo struct{}

func (fakeSearchRepo) Search(_ context.Context, _ string, _ int) ([]uuid.UUID, error) { return nil, nil }
func (fakeSearchRepo) Count(_ context.Context, _ string) (int, error)                { return 0, nil }

type fakeThumbnailRepo struct{}

func (fakeThumbnailRepo) GetThumbnailURL(_ context.Context, key string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

func newTestCatalog(t *testing.T, courses ...*models.Course) (*catalog.CatalogService, *fakeContentRepo, *fakeRatingRepo) {
	t.Helper()
	courseRepo := &fakeCourseRepo{courses: make(map[uuid.UUID]*models.Course)}
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, c := range courses {
		courseRepo.courses[c.ID] = c
		userRepo.users[c.EducatorID] = &models.User{ID: c.EducatorID, Username: "teach"}
	}
	contentRepo := &fakeContentRepo{chapters: make(map[uuid.UUID][]models.Chapter)}
	ratingRepo := &fakeRatingRepo{ratings: make(map[uuid.UUID][]models.Rating)}
	svc := catalog.NewCatalogService(
		logger.New("prod"),
		courseRepo,
		contentRepo,
		&fakeEnrollmentRepo{enrolled: make(map[uuid.UUID][]uuid.UUID)},
		ratingRepo,
		fakeSearchRepo{},
		fakeThumbnailRepo{},
		userRepo,
	)
	return svc, contentRepo, ratingRepo
}

func TestCourseByID_HidesDrafts(t *testing.T) {
	draft := &models.Course{ID: uuid.New(), EducatorID: uuid.New(), Title: "Draft", Published: false}
	svc, _, _ := newTestCatalog(t, draft)

	_, err := svc.CourseByID(context.Background(), draft.ID)
	if !errors.Is(err, app_errors.ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseByID_StripsNonPreviewContentURLs(t *testing.T) {
	course := &models.Course{ID: uuid.New(), EducatorID: uuid.New(), Title: "Go", Published: true}
	svc, contentRepo, _ := newTestCatalog(t, course)
	contentRepo.chapters[course.ID] = []models.Chapter{{
		ID:       uuid.New(),
		CourseID: course.ID,
		Order:    1,
		Lectures: []models.Lecture{
			{ID: uuid.New(), Order: 1, FreePreview: true, ContentURL: "https://cdn/free"},
			{ID: uuid.New(), Order: 2, FreePreview: false, ContentURL: "https://cdn/paid"},
		},
	}}

	details, err := svc.CourseByID(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("CourseByID: %v", err)
	}

	lectures := details.Chapters[0].Lectures
	if lectures[0].ContentURL != "https://cdn/free" {
		t.Errorf("preview lecture URL = %q, want kept", lectures[0].ContentURL)
	}
	if lectures[1].ContentURL != "" {
		t.Errorf("paid lecture URL = %q, want stripped", lectures[1].ContentURL)
	}
}

func TestCourseByID_DefaultsSparseRecords(t *testing.T) {
	// No chapters, ratings or enrollments anywhere; metrics must still work.
	course := &models.Course{ID: uuid.New(), EducatorID: uuid.New(), Title: "Legacy", Published: true}
	svc, _, _ := newTestCatalog(t, course)

	details, err := svc.CourseByID(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("CourseByID: %v", err)
	}
	if details.Chapters == nil || details.Ratings == nil || details.EnrolledStudents == nil {
		t.Error("nested slices not defaulted to empty")
	}
	if details.Rating != 0 {
		t.Errorf("rating = %d, want 0", details.Rating)
	}
	if details.Duration != "0 min" {
		t.Errorf("duration = %q, want %q", details.Duration, "0 min")
	}
	if details.LectureCount != 0 {
		t.Errorf("lecture count = %d, want 0", details.LectureCount)
	}
}

func TestListPublished_OmitsDrafts(t *testing.T) {
	educator := uuid.New()
	pub := &models.Course{ID: uuid.New(), EducatorID: educator, Title: "Live", Published: true}
	draft := &models.Course{ID: uuid.New(), EducatorID: educator, Title: "Hidden", Published: false}
	svc, _, _ := newTestCatalog(t, pub, draft)

	summaries, total, err := svc.ListPublished(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if total != 1 || len(summaries) != 1 {
		t.Fatalf("got %d summaries (total %d), want 1", len(summaries), total)
	}
	if summaries[0].ID != pub.ID {
		t.Errorf("listed course = %v, want %v", summaries[0].ID, pub.ID)
	}
	if summaries[0].EducatorName != "teach" {
		t.Errorf("educator name = %q, want %q", summaries[0].EducatorName, "teach")
	}
}
