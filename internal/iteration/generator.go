// Package iteration slices a program increment's date range into
// fixed-length iterations.
package iteration

import (
	"fmt"
	"time"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/errors"
)

// DefaultLengthDays is the default iteration length.
const DefaultLengthDays = 14

// Generate slices the increment into iterations of lengthDays days.
// When the increment length doesn't divide evenly, the remainder days
// are absorbed into the final iteration instead of producing a short
// trailing one: a 90-day increment at 14-day cadence yields six
// iterations, the last spanning 20 days.
func Generate(pi art.ProgramIncrement, lengthDays int) ([]art.Iteration, error) {
	if lengthDays <= 0 {
		return nil, errors.New(errors.ErrCodeInputBadIteration,
			fmt.Sprintf("iteration length must be positive, got %d days", lengthDays))
	}
	if !pi.EndDate.After(pi.StartDate) {
		return nil, errors.NewInvalidIncrementError(fmt.Sprintf(
			"end date %s is not after start date %s",
			pi.EndDate.Format("2006-01-02"), pi.StartDate.Format("2006-01-02")))
	}

	totalDays := pi.Days()
	count := totalDays / lengthDays
	if count < 1 {
		count = 1
	}

	iterations := make([]art.Iteration, 0, count)
	for i := 0; i < count; i++ {
		start := pi.StartDate.AddDate(0, 0, i*lengthDays)
		end := start.AddDate(0, 0, lengthDays-1)
		if i == count-1 {
			end = pi.EndDate
		}

		iterations = append(iterations, art.Iteration{
			ID:        fmt.Sprintf("%s-it-%d", pi.ID, i+1),
			Name:      fmt.Sprintf("%s - Iteration %d", pi.Name, i+1),
			StartDate: start,
			EndDate:   end,
		})
	}

	return iterations, nil
}

// Contains reports whether the given date falls inside the iteration.
func Contains(it art.Iteration, date time.Time) bool {
	return !date.Before(it.StartDate) && !date.After(it.EndDate)
}
