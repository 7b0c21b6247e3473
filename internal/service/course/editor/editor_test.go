package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/editor"
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

// fakeContentRepo mirrors the dense-order behavior of the real storage:
// creates append at max+1, deletes close the gap among siblings.
type fakeContentRepo struct {
	chapters map[uuid.UUID]*models.Chapter
	lectures map[uuid.UUID]*models.Lecture
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		chapters: make(map[uuid.UUID]*models.Chapter),
		lectures: make(map[uuid.UUID]*models.Lecture),
	}
}

func (f *fakeContentRepo) ChaptersByCourse(_ context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	var out []models.Chapter
	for _, ch := range f.chapters {
		if ch.CourseID != courseID {
			continue
		}
		cp := *ch
		cp.Lectures = []models.Lecture{}
		for _, l := range f.lectures {
			if l.ChapterID == ch.ID {
				cp.Lectures = append(cp.Lectures, *l)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeContentRepo) ChapterByID(_ context.Context, id uuid.UUID) (*models.Chapter, error) {
	ch, ok := f.chapters[id]
	if !ok {
		return nil, app_errors.ErrChapterNotFound
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeContentRepo) LectureByID(_ context.Context, id uuid.UUID) (*models.Lecture, error) {
	l, ok := f.lectures[id]
	if !ok {
		return nil, app_errors.ErrLectureNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeContentRepo) MaxChapterOrder(_ context.Context, courseID uuid.UUID) (int, error) {
	max := 0
	for _, ch := range f.chapters {
		if ch.CourseID == courseID && ch.Order > max {
			max = ch.Order
		}
	}
	return max, nil
}

func (f *fakeContentRepo) MaxLectureOrder(_ context.Context, chapterID uuid.UUID) (int, error) {
	max := 0
	for _, l := range f.lectures {
		if l.ChapterID == chapterID && l.Order > max {
			max = l.Order
		}
	}
	return max, nil
}

func (f *fakeContentRepo) CreateChapter(_ context.Context, chapter models.Chapter) (*models.Chapter, error) {
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	cp := chapter
	f.chapters[chapter.ID] = &cp
	out := chapter
	out.Lectures = []models.Lecture{}
	return &out, nil
}

func (f *fakeContentRepo) UpdateChapter(_ context.Context, chapterID uuid.UUID, upd models.ChapterUpdate) (*models.Chapter, error) {
	ch, ok := f.chapters[chapterID]
	if !ok {
		return nil, app_errors.ErrChapterNotFound
	}
	if upd.Title != nil {
		ch.Title = *upd.Title
	}
	if upd.Description != nil {
		ch.Description = *upd.Description
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeContentRepo) DeleteChapterAndRenumber(_ context.Context, chapterID, courseID uuid.UUID, chapterOrder int) error {
	if _, ok := f.chapters[chapterID]; !ok {
		return app_errors.ErrChapterNotFound
	}
	for id, l := range f.lectures {
		if l.ChapterID == chapterID {
			delete(f.lectures, id)
		}
	}
	delete(f.chapters, chapterID)
	for _, ch := range f.chapters {
		if ch.CourseID == courseID && ch.Order > chapterOrder {
			ch.Order--
		}
	}
	return nil
}

func (f *fakeContentRepo) CreateLecture(_ context.Context, lecture models.Lecture) (*models.Lecture, error) {
	if lecture.ID == uuid.Nil {
		lecture.ID = uuid.New()
	}
	cp := lecture
	f.lectures[lecture.ID] = &cp
	return &lecture, nil
}

func (f *fakeContentRepo) UpdateLecture(_ context.Context, lectureID uuid.UUID, upd models.LectureUpdate) (*models.Lecture, error) {
	l, ok := f.lectures[lectureID]
	if !ok {
		return nil, app_errors.ErrLectureNotFound
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.Duration != nil {
		l.Duration = *upd.Duration
	}
	if upd.ContentURL != nil {
		l.ContentURL = *upd.ContentURL
	}
	if upd.FreePreview != nil {
		l.FreePreview = *upd.FreePreview
	}
	cp := *l
	return &cp, nil
}

func (f *fakeContentRepo) DeleteLectureAndRenumber(_ context.Context, lectureID, chapterID uuid.UUID, lectureOrder int) error {
	if _, ok := f.lectures[lectureID]; !ok {
		return app_errors.ErrLectureNotFound
	}
	delete(f.lectures, lectureID)
	for _, l := range f.lectures {
		if l.ChapterID == chapterID && l.Order > lectureOrder {
			l.Order--
		}
	}
	return nil
}

func newTestEditor(t *testing.T) (*editor.EditorService, *fakeContentRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	educatorID := uuid.New()
	courseID := uuid.New()
	courseRepo := &fakeCourseRepo{courses: map[uuid.UUID]*models.Course{
		courseID: {ID: courseID, EducatorID: educatorID, Title: "Go from scratch"},
	}}
	contentRepo := newFakeContentRepo()
	svc := editor.NewEditorService(logger.New("prod"), courseRepo, contentRepo)
	return svc, contentRepo, courseID, educatorID
}

func chapterOrders(t *testing.T, repo *fakeContentRepo, courseID uuid.UUID) map[int]bool {
	t.Helper()
	orders := make(map[int]bool)
	for _, ch := range repo.chapters {
		if ch.CourseID == courseID {
			if orders[ch.Order] {
				t.Fatalf("duplicate chapter order %d", ch.Order)
			}
			orders[ch.Order] = true
		}
	}
	return orders
}

func TestAddChapter_AssignsSequentialOrders(t *testing.T) {
	svc, _, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ch, err := svc.AddChapter(ctx, courseID, educatorID, editor.AddChapterInput{Title: "Chapter"})
		if err != nil {
			t.Fatalf("AddChapter: %v", err)
		}
		if ch.Order != i {
			t.Errorf("chapter %d: order = %d, want %d", i, ch.Order, i)
		}
	}
}

func TestDeleteChapter_RenumbersSiblings(t *testing.T) {
	svc, repo, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ch, err := svc.AddChapter(ctx, courseID, educatorID, editor.AddChapterInput{Title: "Chapter"})
		if err != nil {
			t.Fatalf("AddChapter: %v", err)
		}
		ids = append(ids, ch.ID)
	}

	if err := svc.DeleteChapter(ctx, courseID, ids[1], educatorID); err != nil {
		t.Fatalf("DeleteChapter: %v", err)
	}

	orders := chapterOrders(t, repo, courseID)
	for want := 1; want <= 3; want++ {
		if !orders[want] {
			t.Errorf("order %d missing after delete; got %v", want, orders)
		}
	}
	if orders[4] {
		t.Error("order 4 still present after delete")
	}
}

func TestAddChapter_RejectsNonEducator(t *testing.T) {
	svc, _, courseID, _ := newTestEditor(t)

	_, err := svc.AddChapter(context.Background(), courseID, uuid.New(), editor.AddChapterInput{Title: "Chapter"})
	if !errors.Is(err, app_errors.ErrNotCourseEducator) {
		t.Errorf("err = %v, want ErrNotCourseEducator", err)
	}
}

func TestAddChapter_RejectsEmptyTitle(t *testing.T) {
	svc, _, courseID, educatorID := newTestEditor(t)

	_, err := svc.AddChapter(context.Background(), courseID, educatorID, editor.AddChapterInput{Title: "   "})
	if !errors.Is(err, app_errors.ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestAddLecture_Validation(t *testing.T) {
	svc, _, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	ch, err := svc.AddChapter(ctx, courseID, educatorID, editor.AddChapterInput{Title: "Intro"})
	if err != nil {
		t.Fatalf("AddChapter: %v", err)
	}

	cases := []struct {
		name string
		in   editor.AddLectureInput
		want error
	}{
		{"empty title", editor.AddLectureInput{Title: "", Duration: 10, ContentURL: "https://cdn/x"}, app_errors.ErrEmptyTitle},
		{"zero duration", editor.AddLectureInput{Title: "L", Duration: 0, ContentURL: "https://cdn/x"}, app_errors.ErrInvalidDuration},
		{"negative duration", editor.AddLectureInput{Title: "L", Duration: -5, ContentURL: "https://cdn/x"}, app_errors.ErrInvalidDuration},
		{"missing url", editor.AddLectureInput{Title: "L", Duration: 10, ContentURL: " "}, app_errors.ErrMissingContentURL},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLectureLifecycle_OrdersStayDense(t *testing.T) {
	svc, repo, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	ch, err := svc.AddChapter(ctx, courseID, educatorID, editor.AddChapterInput{Title: "Intro"})
	if err != nil {
		t.Fatalf("AddChapter: %v", err)
	}

	first, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, editor.AddLectureInput{Title: "One", Duration: 10, ContentURL: "https://cdn/1"})
	if err != nil {
		t.Fatalf("AddLecture: %v", err)
	}
	if first.Order != 1 {
		t.Errorf("first lecture order = %d, want 1", first.Order)
	}

	// Deleting the only lecture leaves the chapter empty without error.
	if err := svc.DeleteLecture(ctx, courseID, ch.ID, first.ID, educatorID); err != nil {
		t.Fatalf("DeleteLecture: %v", err)
	}

	a, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, editor.AddLectureInput{Title: "A", Duration: 10, ContentURL: "https://cdn/a"})
	if err != nil {
		t.Fatalf("AddLecture: %v", err)
	}
	b, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, editor.AddLectureInput{Title: "B", Duration: 10, ContentURL: "https://cdn/b"})
	if err != nil {
		t.Fatalf("AddLecture: %v", err)
	}

	if err := svc.DeleteLecture(ctx, courseID, ch.ID, a.ID, educatorID); err != nil {
		t.Fatalf("DeleteLecture: %v", err)
	}
	if got := repo.lectures[b.ID].Order; got != 1 {
		t.Errorf("remaining lecture order = %d, want 1", got)
	}
}

func TestUpdateLecture_ByIDSurvivesReordering(t *testing.T) {
	svc, _, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	ch, err := svc.AddChapter(ctx, courseID, educatorID, editor.AddChapterInput{Title: "Intro"})
	if err != nil {
		t.Fatalf("AddChapter: %v", err)
	}
	a, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, editor.AddLectureInput{Title: "A", Duration: 10, ContentURL: "https://cdn/a"})
	if err != nil {
		t.Fatalf("AddLecture: %v", err)
	}
	b, err := svc.AddLecture(ctx, courseID, ch.ID, educatorID, editor.AddLectureInput{Title: "B", Duration: 10, ContentURL: "https://cdn/b"})
	if err != nil {
		t.Fatalf("AddLecture: %v", err)
	}

	// b shifts to order 1 after a is removed, but its id keeps addressing it.
	if err := svc.DeleteLecture(ctx, courseID, ch.ID, a.ID, educatorID); err != nil {
		t.Fatalf("DeleteLecture: %v", err)
	}

	newTitle := "B renamed"
	updated, err := svc.UpdateLecture(ctx, courseID, ch.ID, b.ID, educatorID, models.LectureUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateLecture: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("title = %q, want %q", updated.Title, newTitle)
	}
	if updated.Duration != 10 {
		t.Errorf("duration changed on partial update: %d", updated.Duration)
	}
}

func TestChapterFromAnotherCourse_NotFound(t *testing.T) {
	svc, repo, courseID, educatorID := newTestEditor(t)
	ctx := context.Background()

	// A chapter that belongs to some other course entirely.
	other := &models.Chapter{ID: uuid.New(), CourseID: uuid.New(), Title: "Foreign", Order: 1}
	repo.chapters[other.ID] = other

	_, err := svc.UpdateChapter(ctx, courseID, other.ID, educatorID, models.ChapterUpdate{})
	if !errors.Is(err, app_errors.ErrChapterNotFound) {
		t.Errorf("err = %v, want ErrChapterNotFound", err)
	}
}
