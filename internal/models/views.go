package models

import "github.com/google/uuid"

// CourseSummary is the catalog list entry with display metrics precomputed.
type CourseSummary struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	EducatorName   string    `json:"educator_name"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	Price          float64   `json:"price"`
	Discount       int       `json:"discount"`
	EffectivePrice float64   `json:"effective_price"`
	Rating         int       `json:"rating"`
	LectureCount   int       `json:"lecture_count"`
	Duration       string    `json:"duration"`
	EnrolledCount  int       `json:"enrolled_count"`
}

// CourseDetails is the single-course public view. Chapters carry the full
// tree, with content URLs blanked on lectures that are not free previews.
type CourseDetails struct {
	Course
	EducatorName string `json:"educator_name"`
	Rating       int    `json:"rating"`
	Duration     string `json:"duration"`
	LectureCount int    `json:"lecture_count"`
}

type DashboardCourse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Published     bool      `json:"published"`
	EnrolledCount int       `json:"enrolled_count"`
	Earnings      float64   `json:"earnings"`
	Students      []User    `json:"students"`
}

type EducatorDashboard struct {
	TotalCourses  int               `json:"total_courses"`
	TotalEarnings float64           `json:"total_earnings"`
	Courses       []DashboardCourse `json:"courses"`
}

type StudentAnalytics struct {
	Student           User    `json:"student"`
	CompletedLectures int     `json:"completed_lectures"`
	TotalLectures     int     `json:"total_lectures"`
	Completion        float64 `json:"completion"`
}

type CourseAnalytics struct {
	CourseID uuid.UUID          `json:"course_id"`
	Title    string             `json:"title"`
	Students []StudentAnalytics `json:"students"`
}
