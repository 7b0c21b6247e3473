package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app_errors"
	"github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http/controllers/middleware"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

// Every response carries the same envelope: {"success": true, ...} on the
// happy path, {"success": false, "message": ...} otherwise.

func Success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ErrStatus maps service sentinels onto HTTP status codes. Anything
// unrecognized is a dependency or storage failure and comes back as 500.
func ErrStatus(err error) int {
	switch {
	case errors.Is(err, app_errors.ErrNotCourseEducator):
		return http.StatusForbidden
	case errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrChapterNotFound),
		errors.Is(err, app_errors.ErrLectureNotFound),
		errors.Is(err, app_errors.ErrPurchaseNotFound),
		errors.Is(err, app_errors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, app_errors.ErrCourseHasStudents),
		errors.Is(err, app_errors.ErrAlreadyEnrolled):
		return http.StatusConflict
	case errors.Is(err, app_errors.ErrEmptyTitle),
		errors.Is(err, app_errors.ErrInvalidDuration),
		errors.Is(err, app_errors.ErrMissingContentURL),
		errors.Is(err, app_errors.ErrDiscountRange),
		errors.Is(err, app_errors.ErrNegativePrice),
		errors.Is(err, app_errors.ErrInvalidRating),
		errors.Is(err, app_errors.ErrCourseNotPublished),
		errors.Is(err, app_errors.ErrCourseEmpty),
		errors.Is(err, app_errors.ErrNotEnrolled),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrUserExists),
		errors.Is(err, app_errors.ErrBadWebhookSignature):
		return http.StatusBadRequest
	case errors.Is(err, app_errors.ErrFileSize):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, app_errors.ErrTokenExpired),
		errors.Is(err, app_errors.ErrTokenNotFound),
		errors.Is(err, app_errors.ErrIncorrectPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FailErr resolves the status from the error and hides internal failure
// details behind a generic message.
func FailErr(c *gin.Context, log logger.Log, err error) {
	status := ErrStatus(err)
	if status == http.StatusInternalServerError {
		log.ErrorErr("request failed", err, "path", c.Request.URL.Path)
		Fail(c, status, "internal error")
		return
	}
	Fail(c, status, err.Error())
}

// ClientID pulls the authenticated user id set by the auth middleware. The
// bool is false when the handler runs outside an authenticated group.
func ClientID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.ClientIDCtx)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// ParamUUID parses a uuid path parameter, failing the request itself on bad
// input so handlers can return early.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		Fail(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
