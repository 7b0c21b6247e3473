package course

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/management"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type ManagementService interface {
	CreateCourse(ctx context.Context, educatorID uuid.UUID, in management.CreateCourseInput) (uuid.UUID, error)
	UpdateCourse(ctx context.Context, courseID, educatorID uuid.UUID, upd models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID, educatorID uuid.UUID) error
	Publish(ctx context.Context, courseID, educatorID uuid.UUID) error
	Unpublish(ctx context.Context, courseID, educatorID uuid.UUID) error
	MyCourses(ctx context.Context, educatorID uuid.UUID) ([]models.Course, error)
	UploadThumbnail(ctx context.Context, courseID, educatorID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

type newCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    int     `json:"discount"`
}

func (h *ManagementHandler) CreateCourse(c *gin.Context) {
	var input newCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.service.CreateCourse(c.Request.Context(), educatorID, management.CreateCourseInput{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusCreated, gin.H{"id": id})
}

type updateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *int     `json:"discount"`
}

func (h *ManagementHandler) UpdateCourse(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input updateCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), courseID, educatorID, models.CourseUpdate{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
	})
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"course": course})
}

func (h *ManagementHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), courseID, educatorID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "course deleted"})
}

func (h *ManagementHandler) PublishCourse(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.Publish(c.Request.Context(), courseID, educatorID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "course published"})
}

func (h *ManagementHandler) UnpublishCourse(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.Unpublish(c.Request.Context(), courseID, educatorID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "course unpublished"})
}

func (h *ManagementHandler) MyCourses(c *gin.Context) {
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.service.MyCourses(c.Request.Context(), educatorID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	controllers.Success(c, http.StatusOK, gin.H{"courses": courses})
}

func (h *ManagementHandler) UploadThumbnail(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		controllers.Fail(c, http.StatusBadRequest, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		controllers.Fail(c, http.StatusInternalServerError, "cannot open uploaded file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadThumbnail(
		c.Request.Context(),
		courseID,
		educatorID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"url": url})
}
