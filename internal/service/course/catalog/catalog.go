package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListPublished(ctx context.Context, limit int, offset int) ([]models.Course, error)
	CountPublished(ctx context.Context) (int, error)
}

type contentRepo interface {
	ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
}

type enrollmentRepo interface {
	StudentIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	CoursesByStudent(ctx context.Context, userID uuid.UUID) ([]models.Course, error)
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
}

type ratingRepo interface {
	RatingsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Rating, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
	Count(ctx context.Context, query string) (int, error)
}

type thumbnailRepo interface {
	GetThumbnailURL(ctx context.Context, objectKey string) (string, error)
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CatalogService is the public read side: published courses only, nested
// content defensively defaulted, metrics derived on the way out.
type CatalogService struct {
	log            logger.Log
	courseRepo     courseRepo
	contentRepo    contentRepo
	enrollmentRepo enrollmentRepo
	ratingRepo     ratingRepo
	searchRepo     searchRepo
	thumbnailRepo  thumbnailRepo
	userRepo       userRepo
}

func NewCatalogService(
	log logger.Log,
	courseRepo courseRepo,
	contentRepo contentRepo,
	enrollmentRepo enrollmentRepo,
	ratingRepo ratingRepo,
	searchRepo searchRepo,
	thumbnailRepo thumbnailRepo,
	userRepo userRepo,
) *CatalogService {
	return &CatalogService{
		log:            log,
		courseRepo:     courseRepo,
		contentRepo:    contentRepo,
		enrollmentRepo: enrollmentRepo,
		ratingRepo:     ratingRepo,
		searchRepo:     searchRepo,
		thumbnailRepo:  thumbnailRepo,
		userRepo:       userRepo,
	}
}

// assemble fills the nested slices of a course row. Slices come back empty,
// never nil, so derived metrics cannot trip on a sparse record.
func (s *CatalogService) assemble(ctx context.Context, course *models.Course) {
	chapters, err := s.contentRepo.ChaptersByCourse(ctx, course.ID)
	if err != nil {
		s.log.ErrorErr("catalog: failed to load chapters", err)
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	course.Chapters = chapters

	ratings, err := s.ratingRepo.RatingsByCourse(ctx, course.ID)
	if err != nil {
		s.log.ErrorErr("catalog: failed to load ratings", err)
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	course.Ratings = ratings

	enrolled, err := s.enrollmentRepo.StudentIDsByCourse(ctx, course.ID)
	if err != nil {
		s.log.ErrorErr("catalog: failed to load enrollments", err)
	}
	if enrolled == nil {
		enrolled = []uuid.UUID{}
	}
	course.EnrolledStudents = enrolled

	if course.ThumbnailKey != "" {
		url, err := s.thumbnailRepo.GetThumbnailURL(ctx, course.ThumbnailKey)
		if err != nil {
			s.log.ErrorErr("catalog: failed to presign thumbnail", err)
		} else {
			course.ThumbnailURL = url
		}
	}
}

func (s *CatalogService) educatorName(ctx context.Context, educatorID uuid.UUID) string {
	educator, err := s.userRepo.UserByID(ctx, educatorID)
	if err != nil {
		s.log.ErrorErr("catalog: failed to load educator", err)
		return ""
	}
	return educator.Username
}

func (s *CatalogService) summarize(ctx context.Context, course *models.Course) models.CourseSummary {
	s.assemble(ctx, course)
	return models.CourseSummary{
		ID:             course.ID,
		Title:          course.Title,
		Description:    course.Description,
		EducatorName:   s.educatorName(ctx, course.EducatorID),
		ThumbnailURL:   course.ThumbnailURL,
		Price:          course.Price,
		Discount:       course.Discount,
		EffectivePrice: course.EffectivePrice(),
		Rating:         AverageRating(course),
		LectureCount:   LectureCount(course),
		Duration:       CourseDuration(course),
		EnrolledCount:  len(course.EnrolledStudents),
	}
}

// ListPublished pages through the published catalog. A non-empty query routes
// through the search index instead of the plain listing.
func (s *CatalogService) ListPublished(ctx context.Context, query string, count, offset int) ([]models.CourseSummary, int, error) {
	if count <= 0 {
		count = 20
	}
	if offset < 0 {
		offset = 0
	}
	if query != "" {
		return s.searchPublished(ctx, query, count, offset)
	}

	courses, err := s.courseRepo.ListPublished(ctx, count, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courseRepo.CountPublished(ctx)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]models.CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, s.summarize(ctx, &courses[i]))
	}
	return summaries, total, nil
}

func (s *CatalogService) searchPublished(ctx context.Context, query string, count, offset int) ([]models.CourseSummary, int, error) {
	ids, err := s.searchRepo.Search(ctx, query, count+offset)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog search failed: %w", err)
	}
	if len(ids) > offset {
		ids = ids[offset:]
	} else {
		ids = nil
	}
	if len(ids) > count {
		ids = ids[:count]
	}
	if len(ids) == 0 {
		return []models.CourseSummary{}, 0, nil
	}

	total, err := s.searchRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog search count failed: %w", err)
	}

	summaries := make([]models.CourseSummary, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("catalog search: failed to load course", err)
			continue
		}
		if !course.Published {
			continue
		}
		summaries = append(summaries, s.summarize(ctx, course))
	}
	return summaries, total, nil
}

// CourseByID is the public single-course view. Drafts are indistinguishable
// from missing courses, and content URLs are stripped from lectures that are
// not free previews.
func (s *CatalogService) CourseByID(ctx context.Context, id uuid.UUID) (*models.CourseDetails, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, app_errors.ErrCourseNotFound
	}

	s.assemble(ctx, course)
	for i := range course.Chapters {
		for j := range course.Chapters[i].Lectures {
			if !course.Chapters[i].Lectures[j].FreePreview {
				course.Chapters[i].Lectures[j].ContentURL = ""
			}
		}
	}

	details := models.CourseDetails{
		Course:       *course,
		EducatorName: s.educatorName(ctx, course.EducatorID),
		Rating:       AverageRating(course),
		Duration:     CourseDuration(course),
		LectureCount: LectureCount(course),
	}
	return &details, nil
}

// EnrolledCourses lists a student's courses with metrics, for the user area.
func (s *CatalogService) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.CourseSummary, error) {
	courses, err := s.enrollmentRepo.CoursesByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, s.summarize(ctx, &courses[i]))
	}
	return summaries, nil
}
