package payment

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers"
	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

type PurchaseService interface {
	StartCheckout(ctx context.Context, userID, courseID uuid.UUID) (redirectURL string, err error)
	Apply(ctx context.Context, n models.PaymentNotification) error
}

type eventVerifier interface {
	VerifyEvent(payload []byte, signature string) (models.PaymentNotification, error)
}

type PaymentHandler struct {
	log      logger.Log
	service  PurchaseService
	verifier eventVerifier
}

func NewPaymentHandler(l logger.Log, s PurchaseService, v eventVerifier) *PaymentHandler {
	return &PaymentHandler{
		log:      l,
		service:  s,
		verifier: v,
	}
}

type checkoutRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := controllers.ClientID(c)
	if !ok {
		controllers.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input checkoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.service.StartCheckout(c.Request.Context(), userID, input.CourseID)
	if err != nil {
		controllers.FailErr(c, h.log, err)
		return
	}
	controllers.Success(c, http.StatusOK, gin.H{"session_url": url})
}

// Webhook receives provider events. The signature is verified before any
// state is touched; a bad signature gets 400 and changes nothing. Verified
// events are settled through the purchase state machine and acknowledged
// with {received:true} so the provider stops redelivering.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		controllers.Fail(c, http.StatusBadRequest, "cannot read payload")
		return
	}

	notification, err := h.verifier.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, app_errors.ErrBadWebhookSignature) {
			controllers.Fail(c, http.StatusBadRequest, "signature verification failed")
			return
		}
		h.log.ErrorErr("webhook: cannot map event", err)
		controllers.Fail(c, http.StatusBadRequest, "malformed event")
		return
	}

	if err := h.service.Apply(c.Request.Context(), notification); err != nil {
		// Non-2xx makes the provider retry the delivery later.
		controllers.FailErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
