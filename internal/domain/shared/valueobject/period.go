package valueobject

import (
	"fmt"
	"time"
)

// monthKeyLayout is the "YYYY-MM" key used for indirect-expense lookups
const monthKeyLayout = "2006-01"

// MonthPeriod is an inclusive calendar-month range: Start is the first
// instant of the month, End is the last representable instant before
// the next month begins.
type MonthPeriod struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// NewMonthPeriod builds the calendar month bounds for (year, month) in loc.
// Out-of-range months are normalized the way time.Date normalizes them.
func NewMonthPeriod(year int, month time.Month, loc *time.Location) MonthPeriod {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return MonthPeriod{
		Year:  start.Year(),
		Month: start.Month(),
		Start: start,
		End:   end,
	}
}

// MonthPeriodOf returns the month containing t, in t's location
func MonthPeriodOf(t time.Time) MonthPeriod {
	return NewMonthPeriod(t.Year(), t.Month(), t.Location())
}

// Contains reports whether t falls inside the period, bounds included
func (p MonthPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Key returns the "YYYY-MM" month key
func (p MonthPeriod) Key() string {
	return p.Start.Format(monthKeyLayout)
}

// AddMonths returns the period shifted by n calendar months
func (p MonthPeriod) AddMonths(n int) MonthPeriod {
	return NewMonthPeriod(p.Year, p.Month+time.Month(n), p.Start.Location())
}

// Days returns the number of calendar days in the period
func (p MonthPeriod) Days() int {
	return p.End.Day()
}

// ParseMonthKey parses a "YYYY-MM" key into a UTC month period
func ParseMonthKey(key string) (MonthPeriod, error) {
	t, err := time.ParseInLocation(monthKeyLayout, key, time.UTC)
	if err != nil {
		return MonthPeriod{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return NewMonthPeriod(t.Year(), t.Month(), time.UTC), nil
}

// MonthKey formats (year, month) as "YYYY-MM"
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
