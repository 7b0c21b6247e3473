package management_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/management"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeCourseRepo) NewCourse(_ context.Context, course *models.Course) (uuid.UUID, error) {
	course.ID = uuid.New()
	cp := *course
	f.courses[course.ID] = &cp
	return course.ID, nil
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) UpdateCourse(_ context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Price != nil {
		c.Price = *upd.Price
	}
	if upd.Discount != nil {
		c.Discount = *upd.Discount
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) UpdateThumbnail(_ context.Context, id uuid.UUID, objectKey string) error {
	c, ok := f.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.ThumbnailKey = objectKey
	return nil
}

func (f *fakeCourseRepo) SetPublished(_ context.Context, id uuid.UUID, published bool) error {
	c, ok := f.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.Published = published
	return nil
}

func (f *fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) ListByEducator(_ context.Context, educatorID uuid.UUID) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.EducatorID == educatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeContentRepo struct {
	chapters map[uuid.UUID][]models.Chapter
}

func (f *fakeContentRepo) ChaptersByCourse(_ context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	return f.chapters[courseID], nil
}

type fakeEnrollmentRepo struct {
	counts map[uuid.UUID]int
}

func (f *fakeEnrollmentRepo) CountByCourse(_ context.Context, courseID uuid.UUID) (int, error) {
	return f.counts[courseID], nil
}

type fakeSearchRepo struct {
	indexed map[uuid.UUID]bool
}

func (f *fakeSearchRepo) Index(_ context.Context, course models.Course) error {
	f.indexed[course.ID] = true
	return nil
}

func (f *fakeSearchRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.indexed, id)
	return nil
}

type fakeThumbnailRepo struct {
	objects map[string]bool
}

func (f *fakeThumbnailRepo) UploadThumbnail(_ context.Context, courseID uuid.UUID, filename string, _ io.Reader, _ int64, _ string) (string, error) {
	key := courseID.String() + "/" + filename
	f.objects[key] = true
	return key, nil
}

func (f *fakeThumbnailRepo) GetThumbnailURL(_ context.Context, objectKey string) (string, error) {
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeThumbnailRepo) DeleteThumbnail(_ context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}

type env struct {
	svc            *management.ManagementService
	courseRepo     *fakeCourseRepo
	contentRepo    *fakeContentRepo
	enrollmentRepo *fakeEnrollmentRepo
	searchRepo     *fakeSearchRepo
	thumbnailRepo  *fakeThumbnailRepo
}

func newTestEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		courseRepo:     &fakeCourseRepo{courses: make(map[uuid.UUID]*models.Course)},
		contentRepo:    &fakeContentRepo{chapters: make(map[uuid.UUID][]models.Chapter)},
		enrollmentRepo: &fakeEnrollmentRepo{counts: make(map[uuid.UUID]int)},
		searchRepo:     &fakeSearchRepo{indexed: make(map[uuid.UUID]bool)},
		thumbnailRepo:  &fakeThumbnailRepo{objects: make(map[string]bool)},
	}
	e.svc = management.NewManagementService(
		logger.New("prod"),
		e.courseRepo,
		e.contentRepo,
		e.enrollmentRepo,
		e.searchRepo,
		e.thumbnailRepo,
	)
	return e
}

func TestCreateCourse_StartsAsDraft(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()

	id, err := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{
		Title: "Go from scratch", Price: 100, Discount: 20,
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	course := e.courseRepo.courses[id]
	if course.Published {
		t.Error("new course must start unpublished")
	}
	if course.EducatorID != educator {
		t.Errorf("educator = %v, want %v", course.EducatorID, educator)
	}
}

func TestCreateCourse_Validation(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()

	cases := []struct {
		name string
		in   management.CreateCourseInput
		want error
	}{
		{"empty title", management.CreateCourseInput{Title: "   "}, app_errors.ErrEmptyTitle},
		{"negative price", management.CreateCourseInput{Title: "Go", Price: -1}, app_errors.ErrNegativePrice},
		{"discount over 100", management.CreateCourseInput{Title: "Go", Discount: 101}, app_errors.ErrDiscountRange},
		{"negative discount", management.CreateCourseInput{Title: "Go", Discount: -1}, app_errors.ErrDiscountRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.svc.CreateCourse(context.Background(), educator, tc.in); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateCourse_ValidatesMergedPricing(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go", Price: 100})

	bad := 150
	if _, err := e.svc.UpdateCourse(context.Background(), id, educator, models.CourseUpdate{Discount: &bad}); !errors.Is(err, app_errors.ErrDiscountRange) {
		t.Errorf("err = %v, want ErrDiscountRange", err)
	}

	ok := 30
	updated, err := e.svc.UpdateCourse(context.Background(), id, educator, models.CourseUpdate{Discount: &ok})
	if err != nil {
		t.Fatalf("UpdateCourse: %v", err)
	}
	if updated.Discount != 30 || updated.Price != 100 {
		t.Errorf("got price %v discount %d, want 100 / 30", updated.Price, updated.Discount)
	}
}

func TestUpdateCourse_RejectsNonOwner(t *testing.T) {
	e := newTestEnv(t)
	id, _ := e.svc.CreateCourse(context.Background(), uuid.New(), management.CreateCourseInput{Title: "Go"})

	title := "Hijacked"
	_, err := e.svc.UpdateCourse(context.Background(), id, uuid.New(), models.CourseUpdate{Title: &title})
	if !errors.Is(err, app_errors.ErrNotCourseEducator) {
		t.Errorf("err = %v, want ErrNotCourseEducator", err)
	}
}

func TestPublish_RequiresContent(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go"})

	if err := e.svc.Publish(context.Background(), id, educator); !errors.Is(err, app_errors.ErrCourseEmpty) {
		t.Errorf("empty course: err = %v, want ErrCourseEmpty", err)
	}

	// A chapter without lectures is still not publishable.
	e.contentRepo.chapters[id] = []models.Chapter{{ID: uuid.New(), CourseID: id, Order: 1}}
	if err := e.svc.Publish(context.Background(), id, educator); !errors.Is(err, app_errors.ErrCourseEmpty) {
		t.Errorf("lectureless chapter: err = %v, want ErrCourseEmpty", err)
	}

	e.contentRepo.chapters[id][0].Lectures = []models.Lecture{{ID: uuid.New(), Order: 1, Duration: 10}}
	if err := e.svc.Publish(context.Background(), id, educator); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !e.courseRepo.courses[id].Published {
		t.Error("course not marked published")
	}
	if !e.searchRepo.indexed[id] {
		t.Error("published course not indexed for search")
	}
}

func TestUnpublish_RemovesFromSearch(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go"})
	e.contentRepo.chapters[id] = []models.Chapter{{ID: uuid.New(), CourseID: id, Order: 1,
		Lectures: []models.Lecture{{ID: uuid.New(), Order: 1, Duration: 10}}}}
	if err := e.svc.Publish(context.Background(), id, educator); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if err := e.svc.Unpublish(context.Background(), id, educator); err != nil {
		t.Fatalf("Unpublish: %v", err)
	}
	if e.courseRepo.courses[id].Published {
		t.Error("course still published")
	}
	if e.searchRepo.indexed[id] {
		t.Error("unpublished course still in search index")
	}
}

func TestDeleteCourse_RefusesWithEnrollees(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go"})
	e.enrollmentRepo.counts[id] = 3

	err := e.svc.DeleteCourse(context.Background(), id, educator)
	if !errors.Is(err, app_errors.ErrCourseHasStudents) {
		t.Errorf("err = %v, want ErrCourseHasStudents", err)
	}
	if _, ok := e.courseRepo.courses[id]; !ok {
		t.Error("course must survive a refused delete")
	}
}

func TestDeleteCourse_RemovesCourse(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go"})

	if err := e.svc.DeleteCourse(context.Background(), id, educator); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if _, ok := e.courseRepo.courses[id]; ok {
		t.Error("course still present after delete")
	}
}

func TestUploadThumbnail(t *testing.T) {
	e := newTestEnv(t)
	educator := uuid.New()
	id, _ := e.svc.CreateCourse(context.Background(), educator, management.CreateCourseInput{Title: "Go"})
	body := strings.NewReader("fake png bytes")

	_, err := e.svc.UploadThumbnail(context.Background(), id, educator, "cover.png", body, 6<<20, "image/png")
	if !errors.Is(err, app_errors.ErrFileSize) {
		t.Errorf("oversized file: err = %v, want ErrFileSize", err)
	}

	_, err = e.svc.UploadThumbnail(context.Background(), id, educator, "notes.txt", body, 100, "text/plain")
	if !errors.Is(err, app_errors.ErrNotImage) {
		t.Errorf("non-image: err = %v, want ErrNotImage", err)
	}

	url, err := e.svc.UploadThumbnail(context.Background(), id, educator, "cover.png", body, 100, "image/png")
	if err != nil {
		t.Fatalf("UploadThumbnail: %v", err)
	}
	if url == "" {
		t.Error("expected a presigned URL")
	}
	if e.courseRepo.courses[id].ThumbnailKey == "" {
		t.Error("thumbnail key not persisted")
	}
}
