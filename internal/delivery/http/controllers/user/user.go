package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type CatalogService interface {
	EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.CourseSummary, error)
}

type RatingService interface {
	Rate(ctx context.Context, userID, courseID uuid.UUID, value int) error
}

type ProgressService interface {
	MarkComplete(ctx context.Context, userID, courseID, lectureID uuid.UUID) error
	CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.Progress, error)
}

// UserHandler groups the student-facing account routes: enrolled courses,
// ratings and lecture progress.
type UserHandler struct {
	log      logger.Log
	catalog  CatalogService
	rating   RatingService
	progress ProgressService
}

func NewUserHandler(l logger.Log, catalog CatalogService, rating RatingService, progress ProgressService) *UserHandler {
	return &UserHandler{
		log:      l,
		catalog:  catalog,
		rating:   rating,
		progress: progress,
	}
}

func (h *UserHandler) EnrolledCourses(c *gin.Context) {
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.catalog.EnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	if courses == nil {
		courses = []models.CourseSummary{}
	}
	controllers.Success(c, http.StatusOK, gin.H{"courses": courses})
}

type rateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (h *UserHandler) RateCourse(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input rateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.rating.Rate(c.Request.Context(), userID, courseID, input.Rating); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "rating saved"})
}

type progressRequest struct {
	LectureID uuid.UUID `json:"lecture_id" binding:"required"`
}

func (h *UserHandler) MarkProgress(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input progressRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.progress.MarkComplete(c.Request.Context(), userID, courseID, input.LectureID); err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"message": "progress saved"})
}

func (h *UserHandler) CourseProgress(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	progress, err := h.progress.CourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"progress": progress})
}
