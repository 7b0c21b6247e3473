package models

// Partial-update field sets. Nil pointers leave the stored value untouched.

type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Discount    *int
}

type ChapterUpdate struct {
	Title       *string
	Description *string
}

type LectureUpdate struct {
	Title       *string
	Duration    *int
	ContentURL  *string
	FreePreview *bool
}
