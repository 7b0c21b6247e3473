package catalog

import (
	"fmt"
	"math"

	"github.com/sulphite1011/LMS-by-Hamad/internal/models"
)

// Display metrics are pure functions over a course snapshot. All of them
// treat missing or empty nested slices as zero rather than failing, since
// partially populated records do reach the read path.

// AverageRating is the floored mean of the rating values, 0 with no ratings.
func AverageRating(c *models.Course) int {
	if c == nil || len(c.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range c.Ratings {
		sum += r.Value
	}
	return int(math.Floor(float64(sum) / float64(len(c.Ratings))))
}

func LectureCount(c *models.Course) int {
	if c == nil {
		return 0
	}
	count := 0
	for _, ch := range c.Chapters {
		count += len(ch.Lectures)
	}
	return count
}

func ChapterDuration(ch *models.Chapter) string {
	if ch == nil {
		return formatMinutes(0)
	}
	total := 0
	for _, l := range ch.Lectures {
		total += l.Duration
	}
	return formatMinutes(total)
}

func CourseDuration(c *models.Course) string {
	if c == nil {
		return formatMinutes(0)
	}
	total := 0
	for _, ch := range c.Chapters {
		for _, l := range ch.Lectures {
			total += l.Duration
		}
	}
	return formatMinutes(total)
}

// CourseEarnings is the display approximation: current enrollment times the
// current effective price. The ledger-accurate figure lives with the
// dashboard and is intentionally a different number.
func CourseEarnings(c *models.Course) float64 {
	if c == nil || len(c.EnrolledStudents) == 0 {
		return 0
	}
	earnings := float64(len(c.EnrolledStudents)) * c.EffectivePrice()
	return math.Round(earnings*100) / 100
}

func formatMinutes(total int) string {
	if total <= 0 {
		return "0 min"
	}
	h := total / 60
	m := total % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
