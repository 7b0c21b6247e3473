package management

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

const maxThumbnailSizeBytes = 5 << 20

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error)
	UpdateThumbnail(ctx context.Context, id uuid.UUID, objectKey string) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	ListByEducator(ctx context.Context, educatorID uuid.UUID) ([]models.Course, error)
}

type contentRepo interface {
	ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
}

type enrollmentRepo interface {
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type thumbnailRepo interface {
	UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (objectKey string, err error)
	GetThumbnailURL(ctx context.Context, objectKey string) (string, error)
	DeleteThumbnail(ctx context.Context, objectKey string) error
}

// ManagementService owns the course lifecycle: create, edit pricing and copy,
// publish, delete. Only the owning educator gets past any of it.
type ManagementService struct {
	log            logger.Log
	courseRepo     courseRepo
	contentRepo    contentRepo
	enrollmentRepo enrollmentRepo
	searchRepo     searchRepo
	thumbnailRepo  thumbnailRepo
}

func NewManagementService(
	log logger.Log,
	courseRepo courseRepo,
	contentRepo contentRepo,
	enrollmentRepo enrollmentRepo,
	searchRepo searchRepo,
	thumbnailRepo thumbnailRepo,
) *ManagementService {
	return &ManagementService{
		log:            log,
		courseRepo:     courseRepo,
		contentRepo:    contentRepo,
		enrollmentRepo: enrollmentRepo,
		searchRepo:     searchRepo,
		thumbnailRepo:  thumbnailRepo,
	}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Discount    int
}

func validatePricing(price float64, discount int) error {
	if price < 0 {
		return app_errors.ErrNegativePrice
	}
	if discount < 0 || discount > 100 {
		return app_errors.ErrDiscountRange
	}
	return nil
}

func (s *ManagementService) ownedCourse(ctx context.Context, courseID, educatorID uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.EducatorID != educatorID {
		return nil, app_errors.ErrNotCourseEducator
	}
	return course, nil
}

// CreateCourse makes a draft. Courses always start unpublished; content and
// thumbnail come later through the editor and upload endpoints.
func (s *ManagementService) CreateCourse(ctx context.Context, educatorID uuid.UUID, in CreateCourseInput) (uuid.UUID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return uuid.Nil, app_errors.ErrEmptyTitle
	}
	if err := validatePricing(in.Price, in.Discount); err != nil {
		return uuid.Nil, err
	}

	course := models.Course{
		EducatorID:  educatorID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Published:   false,
	}
	return s.courseRepo.NewCourse(ctx, &course)
}

func (s *ManagementService) UpdateCourse(ctx context.Context, courseID, educatorID uuid.UUID, upd models.CourseUpdate) (*models.Course, error) {
	course, err := s.ownedCourse(ctx, courseID, educatorID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}

	price := course.Price
	if upd.Price != nil {
		price = *upd.Price
	}
	discount := course.Discount
	if upd.Discount != nil {
		discount = *upd.Discount
	}
	if err := validatePricing(price, discount); err != nil {
		return nil, err
	}

	updated, err := s.courseRepo.UpdateCourse(ctx, courseID, upd)
	if err != nil {
		return nil, err
	}
	if updated.Published {
		if err := s.searchRepo.Index(ctx, *updated); err != nil {
			s.log.ErrorErr("failed to reindex updated course", err)
		}
	}
	return updated, nil
}

// DeleteCourse refuses once anyone is enrolled; those courses get unpublished
// instead so students keep their content.
func (s *ManagementService) DeleteCourse(ctx context.Context, courseID, educatorID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, courseID, educatorID)
	if err != nil {
		return err
	}

	enrolled, err := s.enrollmentRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return app_errors.ErrCourseHasStudents
	}

	if err := s.courseRepo.DeleteCourse(ctx, courseID); err != nil {
		return err
	}

	if course.ThumbnailKey != "" {
		if err := s.thumbnailRepo.DeleteThumbnail(ctx, course.ThumbnailKey); err != nil {
			s.log.ErrorErr("failed to delete course thumbnail", err)
		}
	}
	if err := s.searchRepo.Delete(ctx, courseID); err != nil {
		s.log.ErrorErr("failed to remove course from search index", err)
	}
	return nil
}

// Publish requires at least one chapter holding at least one lecture.
func (s *ManagementService) Publish(ctx context.Context, courseID, educatorID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, courseID, educatorID)
	if err != nil {
		return err
	}

	chapters, err := s.contentRepo.ChaptersByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	hasLecture := false
	for _, ch := range chapters {
		if len(ch.Lectures) > 0 {
			hasLecture = true
			break
		}
	}
	if !hasLecture {
		return app_errors.ErrCourseEmpty
	}

	if err := s.courseRepo.SetPublished(ctx, courseID, true); err != nil {
		return err
	}
	if err := s.searchRepo.Index(ctx, *course); err != nil {
		s.log.ErrorErr("failed to index published course", err)
		return err
	}
	return nil
}

func (s *ManagementService) Unpublish(ctx context.Context, courseID, educatorID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, courseID, educatorID); err != nil {
		return err
	}
	if err := s.courseRepo.SetPublished(ctx, courseID, false); err != nil {
		return err
	}
	if err := s.searchRepo.Delete(ctx, courseID); err != nil {
		s.log.ErrorErr("failed to remove unpublished course from search index", err)
	}
	return nil
}

func (s *ManagementService) MyCourses(ctx context.Context, educatorID uuid.UUID) ([]models.Course, error) {
	courses, err := s.courseRepo.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ThumbnailKey == "" {
			continue
		}
		url, err := s.thumbnailRepo.GetThumbnailURL(ctx, courses[i].ThumbnailKey)
		if err != nil {
			s.log.ErrorErr("failed to presign thumbnail", err)
			continue
		}
		courses[i].ThumbnailURL = url
	}
	return courses, nil
}

// UploadThumbnail stores the image first and persists the object key only
// after the upload succeeded, so the course never points at a missing asset.
func (s *ManagementService) UploadThumbnail(
	ctx context.Context,
	courseID, educatorID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	course, err := s.ownedCourse(ctx, courseID, educatorID)
	if err != nil {
		return "", err
	}

	if size > maxThumbnailSizeBytes {
		return "", app_errors.ErrFileSize
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}

	if course.ThumbnailKey != "" {
		if err := s.thumbnailRepo.DeleteThumbnail(ctx, course.ThumbnailKey); err != nil {
			s.log.ErrorErr("failed to delete previous thumbnail", err)
		}
	}

	objectKey, err := s.thumbnailRepo.UploadThumbnail(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload thumbnail to storage", err)
		return "", err
	}
	if err := s.courseRepo.UpdateThumbnail(ctx, courseID, objectKey); err != nil {
		s.log.ErrorErr("failed to save thumbnail key to db", err)
		return "", err
	}

	url, err := s.thumbnailRepo.GetThumbnailURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to presign thumbnail", err)
		return "", err
	}
	return url, nil
}
