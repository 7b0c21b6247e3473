package course

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type CatalogService interface {
	ListPublished(ctx context.Context, query string, count, offset int) ([]models.CourseSummary, int, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error)
}

type CatalogHandler struct {
	log     logger.Log
	service CatalogService
}

func NewCatalogHandler(l logger.Log, s CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     l,
		service: s,
	}
}

// ListCourses serves the public catalog. `search` switches to full-text
// matching; `count` and `offset` page the result.
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "20"))
	if err != nil {
		controllers.Fail(c, http.StatusBadRequest, "invalid count")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		controllers.Fail(c, http.StatusBadRequest, "invalid offset")
		return
	}
	query := c.Query("search")

	courses, total, err := h.service.ListPublished(c.Request.Context(), query, count, offset)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}

	controllers.Success(c, http.StatusOK, gin.H{
		"courses": courses,
		"total":   total,
	})
}

func (h *CatalogHandler) CourseByID(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}

	details, err := h.service.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"course": details})
}
