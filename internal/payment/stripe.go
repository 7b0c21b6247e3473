package payment

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
)

// StripeClient wraps checkout session creation and webhook verification.
// Amounts are dollars everywhere else in the system; cents exist only here.
type StripeClient struct {
	webhookSecret string
	currency      string
	successURL    string
	cancelURL     string
}

func NewStripeClient(secretKey, webhookSecret, currency, successURL, cancelURL string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{
		webhookSecret: webhookSecret,
		currency:      currency,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckoutSession opens a payment session for a pending purchase and
// returns the hosted payment page URL. The purchase id travels in session
// metadata so the webhook can find the record it settles.
func (c *StripeClient) CreateCheckoutSession(purchase models.Purchase, courseTitle string) (string, error) {
	amountCents := int64(math.Round(purchase.Amount * 100))

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(courseTitle),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.AddMetadata("purchaseId", purchase.ID.String())
	params.AddMetadata("courseId", purchase.CourseID.String())
	params.AddMetadata("userId", purchase.UserID.String())

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", app_errors.ErrPaymentProvider, err)
	}
	return s.URL, nil
}

// VerifyEvent checks the webhook signature and maps the event to a payment
// notification. Event types the system does not react to come back as
// NotificationUnknown with no error so the caller can acknowledge them.
func (c *StripeClient) VerifyEvent(payload []byte, signature string) (models.PaymentNotification, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return models.PaymentNotification{}, fmt.Errorf("%w: %v", app_errors.ErrBadWebhookSignature, err)
	}

	var kind string
	switch event.Type {
	case "checkout.session.completed":
		kind = models.NotificationPaymentSucceeded
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		kind = models.NotificationPaymentFailed
	default:
		return models.PaymentNotification{Kind: models.NotificationUnknown}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return models.PaymentNotification{}, fmt.Errorf("parse checkout session: %w", err)
	}
	purchaseID, err := uuid.Parse(sess.Metadata["purchaseId"])
	if err != nil {
		return models.PaymentNotification{}, fmt.Errorf("missing purchase id in session metadata: %w", err)
	}

	return models.PaymentNotification{Kind: kind, PurchaseID: purchaseID}, nil
}
