package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")

var ErrCourseNotFound = errors.New("course not found")
var ErrChapterNotFound = errors.New("chapter not found")
var ErrLectureNotFound = errors.New("lecture not found")
var ErrPurchaseNotFound = errors.New("purchase not found")

var ErrNotCourseEducator = errors.New("you are not the course educator")
var ErrCourseNotPublished = errors.New("course is not published")
var ErrCourseHasStudents = errors.New("course with enrolled students cannot be deleted")
var ErrCourseEmpty = errors.New("course needs at least one chapter with a lecture before publishing")

var ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
var ErrNotEnrolled = errors.New("student is not enrolled in this course")

var ErrEmptyTitle = errors.New("title must not be empty")
var ErrInvalidDuration = errors.New("lecture duration must be positive")
var ErrMissingContentURL = errors.New("lecture content url is required")
var ErrDiscountRange = errors.New("discount must be between 0 and 100")
var ErrNegativePrice = errors.New("price must not be negative")
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
var ErrThumbnailMissing = errors.New("thumbnail not attached")

var ErrPaymentProvider = errors.New("payment provider unavailable")
var ErrBadWebhookSignature = errors.New("webhook signature verification failed")
