// Package valueobject contains immutable value types shared by use cases and renderers.
package valueobject

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// DateLayout is the calendar date format accepted by report queries.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar range in UTC. End is the last instant of its day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses start and end dates (YYYY-MM-DD) into an inclusive range.
// Missing or unparseable dates and inverted ranges return ErrInvalidDateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("%w: start and end dates are required", domainerror.ErrInvalidDateRange)
	}

	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", domainerror.ErrInvalidDateRange)
	}
	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date must be YYYY-MM-DD", domainerror.ErrInvalidDateRange)
	}
	if startDate.After(endDate) {
		return DateRange{}, fmt.Errorf("%w: start date is after end date", domainerror.ErrInvalidDateRange)
	}

	return NewDateRange(startDate, endDate), nil
}

// NewDateRange builds a range covering every instant from the start of start's day
// to the end of end's day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: startOfDay(start),
		End:   startOfDay(end).AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
}

// DayRange returns the range covering a single calendar day.
func DayRange(date string) (DateRange, error) {
	return ParseDateRange(date, date)
}

// MonthRange returns the range covering a calendar month.
func MonthRange(month, year int) (DateRange, error) {
	if month < 1 || month > 12 || year < 1 {
		return DateRange{}, fmt.Errorf("%w: month must be 1-12 and year positive", domainerror.ErrInvalidDateRange)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return NewDateRange(first, first.AddDate(0, 1, -1)), nil
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartLabel returns the start date formatted as YYYY-MM-DD.
func (r DateRange) StartLabel() string {
	return r.Start.Format(DateLayout)
}

// EndLabel returns the end date formatted as YYYY-MM-DD.
func (r DateRange) EndLabel() string {
	return r.End.Format(DateLayout)
}

// String renders the range as "start - end", or a single date for one-day ranges.
func (r DateRange) String() string {
	if r.StartLabel() == r.EndLabel() {
		return r.StartLabel()
	}
	return r.StartLabel() + " - " + r.EndLabel()
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
