package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrSameDates      = errors.New("start date and end date cannot be the same")
	ErrEndBeforeStart = errors.New("end date must be after start date")
)

// DateRange is an immutable stay interval. The start instant is the check-in
// date and the end instant is the check-out date.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange validates that the interval is non-empty and properly ordered.
//
// Returns:
//   - domain.ErrSameDates if start and end are the same instant.
//   - domain.ErrEndBeforeStart if end precedes start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.Equal(end) {
		return DateRange{}, ErrSameDates
	}

	if end.Before(start) {
		return DateRange{}, ErrEndBeforeStart
	}

	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time { return r.start }

func (r DateRange) End() time.Time { return r.end }

// TotalNights returns the number of nights in the range, rounding partial
// days up. Any valid range counts as at least one night.
func (r DateRange) TotalNights() int {
	const nightHours = 24

	return int(math.Ceil(r.end.Sub(r.start).Hours() / nightHours))
}

// Overlaps reports whether two ranges share at least one night. Ranges are
// half-open: back-to-back stays that only touch at a boundary do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}
