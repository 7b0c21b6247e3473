package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	authctl "github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/auth"
	coursectl "github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/course"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/educator"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/middleware"
	paymentctl "github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/payment"
	userctl "github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/user"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type PaymentVerifier interface {
	VerifyEvent(payload []byte, signature string) (models.PaymentNotification, error)
}

func InitRoutes(l logger.Log, u service.Collection, verifier PaymentVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	authProvider := middleware.NewAuthMiddlewareProvider(l, u.Auth)

	statusController := controllers.NewStatusHandler()
	authController := authctl.NewAuthHandler(l, u.Auth)
	catalogController := coursectl.NewCatalogHandler(l, u.Catalog)
	managementController := coursectl.NewManagementHandler(l, u.Management)
	editorController := coursectl.NewEditorHandler(l, u.Editor)
	userController := userctl.NewUserHandler(l, u.Catalog, u.Rating, u.Progress)
	dashboardController := educator.NewDashboardHandler(l, u.Dashboard)
	paymentController := paymentctl.NewPaymentHandler(l, u.Purchase, verifier)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.POST("/webhooks/payment", paymentController.Webhook)
		v1.POST("/checkout", authProvider.AuthMiddleware, paymentController.Checkout)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", authController.Refresh)
		}

		v1.GET("/me", authProvider.AuthMiddleware, authController.Me)

		courses := v1.Group("/courses")
		{
			courses.GET("", catalogController.ListCourses)
			courses.GET("/:course_id", catalogController.CourseByID)
		}

		student := v1.Group("/user", authProvider.AuthMiddleware)
		{
			student.GET("/courses", userController.EnrolledCourses)
			student.POST("/courses/:course_id/rate", userController.RateCourse)
			student.POST("/courses/:course_id/progress", userController.MarkProgress)
			student.GET("/courses/:course_id/progress", userController.CourseProgress)
			student.PATCH("/become-educator", authController.BecomeEducator)
		}

		edu := v1.Group("/educator", authProvider.AuthMiddleware, middleware.RequireRoles(models.EducatorRole))
		{
			edu.GET("/dashboard", dashboardController.Dashboard)

			eduCourses := edu.Group("/courses")
			{
				eduCourses.GET("", managementController.MyCourses)
				eduCourses.POST("", managementController.CreateCourse)
				eduCourses.PUT("/:course_id", managementController.UpdateCourse)
				eduCourses.DELETE("/:course_id", managementController.DeleteCourse)
				eduCourses.PATCH("/:course_id/publish", managementController.PublishCourse)
				eduCourses.PATCH("/:course_id/unpublish", managementController.UnpublishCourse)
				eduCourses.PUT("/:course_id/thumbnail", managementController.UploadThumbnail)
				eduCourses.GET("/:course_id/analytics", dashboardController.CourseAnalytics)

				eduCourses.GET("/:course_id/chapters", editorController.Curriculum)
				eduCourses.POST("/:course_id/chapters", editorController.AddChapter)
				eduCourses.PUT("/:course_id/chapters/:chapter_id", editorController.UpdateChapter)
				eduCourses.DELETE("/:course_id/chapters/:chapter_id", editorController.DeleteChapter)
				eduCourses.POST("/:course_id/chapters/:chapter_id/lectures", editorController.AddLecture)
				eduCourses.PUT("/:course_id/chapters/:chapter_id/lectures/:lecture_id", editorController.UpdateLecture)
				eduCourses.DELETE("/:course_id/chapters/:chapter_id/lectures/:lecture_id", editorController.DeleteLecture)
			}
		}
	}
	return r
}
