package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseFailed    = "failed"
)

type Purchase struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	NotificationPaymentSucceeded = "payment_succeeded"
	NotificationPaymentFailed    = "payment_failed"
	NotificationUnknown          = "unknown"
)

// PaymentNotification is a processor event mapped back to a purchase.
type PaymentNotification struct {
	Kind       string
	PurchaseID uuid.UUID
}
