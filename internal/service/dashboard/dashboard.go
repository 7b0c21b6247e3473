package dashboard

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListByEducator(ctx context.Context, educatorID uuid.UUID) ([]models.Course, error)
}

type contentRepo interface {
	LectureCountByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
}

type enrollmentRepo interface {
	StudentsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.User, error)
}

type purchaseRepo interface {
	SumCompletedByEducator(ctx context.Context, educatorID uuid.UUID) (float64, error)
}

type progressRepo interface {
	CompletedCountByCourse(ctx context.Context, courseID uuid.UUID) (map[uuid.UUID]int, error)
}

// DashboardService composes courses, purchases and progress into educator
// rollups. Total earnings here is the ledger figure, summed over completed
// purchase amounts; it deliberately disagrees with the catalog's
// enrollment-times-price estimate once prices change.
type DashboardService struct {
	log            logger.Log
	courseRepo     courseRepo
	contentRepo    contentRepo
	enrollmentRepo enrollmentRepo
	purchaseRepo   purchaseRepo
	progressRepo   progressRepo
}

func NewDashboardService(
	log logger.Log,
	courseRepo courseRepo,
	contentRepo contentRepo,
	enrollmentRepo enrollmentRepo,
	purchaseRepo purchaseRepo,
	progressRepo progressRepo,
) *DashboardService {
	return &DashboardService{
		log:            log,
		courseRepo:     courseRepo,
		contentRepo:    contentRepo,
		enrollmentRepo: enrollmentRepo,
		purchaseRepo:   purchaseRepo,
		progressRepo:   progressRepo,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, educatorID uuid.UUID) (*models.EducatorDashboard, error) {
	courses, err := s.courseRepo.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	totalEarnings, err := s.purchaseRepo.SumCompletedByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}

	dashboard := models.EducatorDashboard{
		TotalCourses:  len(courses),
		TotalEarnings: totalEarnings,
		Courses:       make([]models.DashboardCourse, 0, len(courses)),
	}
	for _, c := range courses {
		students, err := s.enrollmentRepo.StudentsByCourse(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if students == nil {
			students = []models.User{}
		}
		earnings := float64(len(students)) * c.EffectivePrice()
		dashboard.Courses = append(dashboard.Courses, models.DashboardCourse{
			ID:            c.ID,
			Title:         c.Title,
			Published:     c.Published,
			EnrolledCount: len(students),
			Earnings:      math.Round(earnings*100) / 100,
			Students:      students,
		})
	}
	return &dashboard, nil
}

// CourseAnalytics reports each enrolled student's completion percentage. A
// course with no lectures reports 0% for everyone instead of dividing by
// zero.
func (s *DashboardService) CourseAnalytics(ctx context.Context, courseID, educatorID uuid.UUID) (*models.CourseAnalytics, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.EducatorID != educatorID {
		return nil, app_errors.ErrNotCourseEducator
	}

	totalLectures, err := s.contentRepo.LectureCountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	students, err := s.enrollmentRepo.StudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progressRepo.CompletedCountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	analytics := models.CourseAnalytics{
		CourseID: course.ID,
		Title:    course.Title,
		Students: make([]models.StudentAnalytics, 0, len(students)),
	}
	for _, student := range students {
		done := completed[student.ID]
		var pct float64
		if totalLectures > 0 {
			pct = float64(done) / float64(totalLectures) * 100
		}
		analytics.Students = append(analytics.Students, models.StudentAnalytics{
			Student:           student,
			CompletedLectures: done,
			TotalLectures:     totalLectures,
			Completion:        math.Round(pct*100) / 100,
		})
	}
	return &analytics, nil
}
