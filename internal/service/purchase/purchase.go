package purchase

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
}

type purchaseRepo interface {
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	PurchaseByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	CompleteAndEnroll(ctx context.Context, purchaseID uuid.UUID) (applied bool, err error)
	MarkFailed(ctx context.Context, purchaseID uuid.UUID) (applied bool, err error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
}

type paymentProvider interface {
	CreateCheckoutSession(purchase models.Purchase, courseTitle string) (string, error)
}

// PurchaseService drives the pending -> completed/failed state machine.
// Transitions are guarded in storage, so processor retries and duplicate
// webhook deliveries settle as no-ops.
type PurchaseService struct {
	log            logger.Log
	courseRepo     courseRepo
	purchaseRepo   purchaseRepo
	enrollmentRepo enrollmentRepo
	provider       paymentProvider
}

func NewPurchaseService(
	log logger.Log,
	courseRepo courseRepo,
	purchaseRepo purchaseRepo,
	enrollmentRepo enrollmentRepo,
	provider paymentProvider,
) *PurchaseService {
	return &PurchaseService{
		log:            log,
		courseRepo:     courseRepo,
		purchaseRepo:   purchaseRepo,
		enrollmentRepo: enrollmentRepo,
		provider:       provider,
	}
}

// StartCheckout records a pending purchase with the price frozen at the
// moment of checkout, then opens a provider session. Later price or discount
// edits never change what this purchase settles for.
func (s *PurchaseService) StartCheckout(ctx context.Context, userID, courseID uuid.UUID) (redirectURL string, err error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if !course.Published {
		return "", app_errors.ErrCourseNotPublished
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, courseID, userID)
	if err != nil {
		return "", err
	}
	if enrolled {
		return "", app_errors.ErrAlreadyEnrolled
	}

	purchase := models.Purchase{
		UserID:   userID,
		CourseID: courseID,
		Amount:   course.EffectivePrice(),
	}
	if err := s.purchaseRepo.CreatePurchase(ctx, &purchase); err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(purchase, course.Title)
	if err != nil {
		if _, markErr := s.purchaseRepo.MarkFailed(ctx, purchase.ID); markErr != nil {
			s.log.ErrorErr("failed to mark purchase failed after provider error", markErr)
		}
		return "", fmt.Errorf("checkout session: %w", err)
	}
	return url, nil
}

// Apply settles one payment notification. A success completes the purchase
// and enrolls the student in a single transaction; a failure marks the
// purchase failed. Notifications for already-terminal purchases change
// nothing, and unknown kinds are acknowledged without effect.
func (s *PurchaseService) Apply(ctx context.Context, n models.PaymentNotification) error {
	switch n.Kind {
	case models.NotificationPaymentSucceeded:
		applied, err := s.purchaseRepo.CompleteAndEnroll(ctx, n.PurchaseID)
		if err != nil {
			return err
		}
		if !applied {
			s.log.Info("payment success redelivered for settled purchase", "purchase_id", n.PurchaseID)
		}
		return nil
	case models.NotificationPaymentFailed:
		applied, err := s.purchaseRepo.MarkFailed(ctx, n.PurchaseID)
		if err != nil {
			return err
		}
		if !applied {
			s.log.Info("payment failure ignored for settled purchase", "purchase_id", n.PurchaseID)
		}
		return nil
	default:
		s.log.Debug("ignoring payment notification", "kind", n.Kind)
		return nil
	}
}

func (s *PurchaseService) PurchaseByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	return s.purchaseRepo.PurchaseByID(ctx, id)
}
