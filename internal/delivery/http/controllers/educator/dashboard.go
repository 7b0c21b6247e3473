package educator

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type DashboardService interface {
	Dashboard(ctx context.Context, educatorID uuid.UUID) (*models.EducatorDashboard, error)
	CourseAnalytics(ctx context.Context, courseID, educatorID uuid.UUID) (*models.CourseAnalytics, error)
}

type DashboardHandler struct {
	log     logger.Log
	service DashboardService
}

func NewDashboardHandler(l logger.Log, s DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:     l,
		service: s,
	}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), educatorID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"dashboard": dashboard})
}

func (h *DashboardHandler) CourseAnalytics(c *gin.Context) {
	courseID, ok := controllers.ParamUUID(c, "course_id")
	if !ok {
		return
	}
	educatorID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	analytics, err := h.service.CourseAnalytics(c.Request.Context(), courseID, educatorID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"analytics": analytics})
}
