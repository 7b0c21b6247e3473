package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID               uuid.UUID   `json:"id"`
	EducatorID       uuid.UUID   `json:"educator_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Price            float64     `json:"price"`
	Discount         int         `json:"discount"`
	ThumbnailKey     string      `json:"-"`
	ThumbnailURL     string      `json:"thumbnail_url,omitempty"`
	Published        bool        `json:"published"`
	Chapters         []Chapter   `json:"chapters"`
	EnrolledStudents []uuid.UUID `json:"enrolled_students"`
	Ratings          []Rating    `json:"ratings"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// EffectivePrice is the price after the discount percentage, rounded to cents.
func (c *Course) EffectivePrice() float64 {
	price := c.Price * (1 - float64(c.Discount)/100)
	return math.Round(price*100) / 100
}

type Chapter struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	Lectures    []Lecture `json:"lectures"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Lecture struct {
	ID          uuid.UUID `json:"id"`
	ChapterID   uuid.UUID `json:"chapter_id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Duration    int       `json:"duration"`
	ContentURL  string    `json:"content_url,omitempty"`
	FreePreview bool      `json:"free_preview"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Rating struct {
	UserID uuid.UUID `json:"user_id"`
	Value  int       `json:"value"`
}
