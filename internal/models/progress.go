package models

import "github.com/google/uuid"

// Progress tracks which lectures a student completed in one course.
type Progress struct {
	UserID            uuid.UUID   `json:"user_id"`
	CourseID          uuid.UUID   `json:"course_id"`
	CompletedLectures []uuid.UUID `json:"completed_lectures"`
}
