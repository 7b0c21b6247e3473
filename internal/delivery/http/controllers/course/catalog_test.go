package course_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/course"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type fakeCatalog struct {
	summaries []models.CourseSummary
	details   map[uuid.UUID]*models.CourseDetails
	lastQuery string
	lastCount int
}

func (f *fakeCatalog) ListPublished(_ context.Context, query string, count, _ int) ([]models.CourseSummary, int, error) {
	f.lastQuery = query
	f.lastCount = count
	return f.summaries, len(f.summaries), nil
}

func (f *fakeCatalog) CourseByID(_ context.Context, id uuid.UUID) (*models.CourseDetails, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return d, nil
}

func newCatalogRouter(t *testing.T, svc *fakeCatalog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := course.NewCatalogHandler(logger.New("prod"), svc)
	r := gin.New()
	r.GET("/courses", handler.ListCourses)
	r.GET("/courses/:course_id", handler.CourseByID)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListCourses_Envelope(t *testing.T) {
	svc := &fakeCatalog{summaries: []models.CourseSummary{
		{ID: uuid.New(), Title: "Go from scratch", Rating: 4, Duration: "2h 5m"},
	}}
	r := newCatalogRouter(t, svc)

	w := get(r, "/courses?search=go&count=5")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool                   `json:"success"`
		Courses []models.CourseSummary `json:"courses"`
		Total   int                    `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success must be true")
	}
	if resp.Total != 1 || len(resp.Courses) != 1 {
		t.Errorf("got %d courses (total %d), want 1", len(resp.Courses), resp.Total)
	}
	if resp.Courses[0].Duration != "2h 5m" {
		t.Errorf("duration = %q, want %q", resp.Courses[0].Duration, "2h 5m")
	}
	if svc.lastQuery != "go" || svc.lastCount != 5 {
		t.Errorf("service got query %q count %d, want go / 5", svc.lastQuery, svc.lastCount)
	}
}

func TestListCourses_BadPaging(t *testing.T) {
	r := newCatalogRouter(t, &fakeCatalog{})

	w := get(r, "/courses?count=abc")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCourseByID_NotFound(t *testing.T) {
	r := newCatalogRouter(t, &fakeCatalog{details: map[uuid.UUID]*models.CourseDetails{}})

	w := get(r, "/courses/"+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Success {
		t.Error("success must be false")
	}
}

func TestCourseByID_InvalidUUID(t *testing.T) {
	r := newCatalogRouter(t, &fakeCatalog{})

	w := get(r, "/courses/not-a-uuid")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCourseByID_Found(t *testing.T) {
	id := uuid.New()
	svc := &fakeCatalog{details: map[uuid.UUID]*models.CourseDetails{
		id: {Course: models.Course{ID: id, Title: "Go", Published: true}, Rating: 5},
	}}
	r := newCatalogRouter(t, svc)

	w := get(r, "/courses/"+id.String())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool                 `json:"success"`
		Course  models.CourseDetails `json:"course"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success || resp.Course.ID != id {
		t.Errorf("body = %s", w.Body.String())
	}
}
