package course

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/editor"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type EditorService interface {
	Curriculum(ctx context.Context, courseID, educatorID uuid.UUID) ([]models.Chapter, error)
	AddChapter(ctx context.Context, courseID, educatorID uuid.UUID, in editor.AddChapterInput) (*models.Chapter, error)
	UpdateChapter(ctx context.Context, courseID, chapterID, educatorID uuid.UUID, upd models.ChapterUpdate) (*models.Chapter, error)
	DeleteChapter(ctx context.Context, courseID, chapterID, educatorID uuid.UUID) error
	AddLecture(ctx context.Context, courseID, chapterID, educatorID uuid.UUID, in editor.AddLectureInput) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, courseID, chapterID, lectureID, educatorID uuid.UUID, upd models.LectureUpdate) (*models.Lecture, error)
	DeleteLecture(ctx context.Context, courseID, chapterID, lectureID, educatorID uuid.UUID) error
}

// EditorHandler exposes the chapter/lecture tree to the owning educator.
// Content is addressed by id in the path; order is derived server-side.
type EditorHandler struct {
	log     logger.Log
	service EditorService
}

func NewEditorHandler(l logger.Log, s EditorService) *EditorHandler {
	return &EditorHandler{
		log:     l,
		service: s,
	}
}

func (h *EditorHandler) Curriculum(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	chapters, err := h.service.Curriculum(c.Request.Context(), courseID, educatorID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	controllers.Success(c, http.StatusOK, gin.H{"chapters": chapters})
}

type addChapterRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *EditorHandler) AddChapter(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input addChapterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	chapter, err := h.service.AddChapter(c.Request.Context(), courseID, educatorID, editor.AddChapterInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusCreated, gin.H{"chapter": chapter})
}

type updateChapterRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *EditorHandler) UpdateChapter(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	chapterID, ok := controllers.ParamUUID(c, "chapter_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input updateChapterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	chapter, err := h.service.UpdateChapter(c.Request.Context(), courseID, chapterID, educatorID, models.ChapterUpdate{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"chapter": chapter})
}

func (h *EditorHandler) DeleteChapter(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	chapterID, ok := controllers.ParamUUID(c, "chapter_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.DeleteChapter(c.Request.Context(), courseID, chapterID, educatorID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "chapter deleted"})
}

type addLectureRequest struct {
	Title       string `json:"title" binding:"required"`
	Duration    int    `json:"duration" binding:"required"`
	ContentURL  string `json:"content_url" binding:"required"`
	FreePreview bool   `json:"free_preview"`
}

func (h *EditorHandler) AddLecture(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	chapterID, ok := controllers.ParamUUID(c, "chapter_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input addLectureRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	lecture, err := h.service.AddLecture(c.Request.Context(), courseID, chapterID, educatorID, editor.AddLectureInput{
		Title:       input.Title,
		Duration:    input.Duration,
		ContentURL:  input.ContentURL,
		FreePreview: input.FreePreview,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusCreated, gin.H{"lecture": lecture})
}

type updateLectureRequest struct {
	Title       *string `json:"title"`
	Duration    *int    `json:"duration"`
	ContentURL  *string `json:"content_url"`
	FreePreview *bool   `json:"free_preview"`
}

func (h *EditorHandler) UpdateLecture(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	chapterID, ok := controllers.ParamUUID(c, "chapter_id")
	if !ok {
		return
	}
	lectureID, ok := controllers.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input updateLectureRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	lecture, err := h.service.UpdateLecture(c.Request.Context(), courseID, chapterID, lectureID, educatorID, models.LectureUpdate{
		Title:       input.Title,
		Duration:    input.Duration,
		ContentURL:  input.ContentURL,
		FreePreview: input.FreePreview,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"lecture": lecture})
}

func (h *EditorHandler) DeleteLecture(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	chapterID, ok := controllers.ParamUUID(c, "chapter_id")
	if !ok {
		return
	}
	lectureID, ok := controllers.ParamUUID(c, "lecture_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.DeleteLecture(c.Request.Context(), courseID, chapterID, lectureID, educatorID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "lecture deleted"})
}
