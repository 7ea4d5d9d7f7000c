package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// AllMonths disables the month filter
	AllMonths time.Month = 0

	// AllDays disables the day-of-week filter
	AllDays time.Weekday = -1

	allKeyword = "all"
)

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDay   = errors.New("invalid day")
)

// Months lists the month names the datasets cover, in calendar order
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days lists the weekday names accepted by ParseDay, Monday first
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Filter selects the trips to analyze
type Filter struct {
	City  string       `json:"city"`
	Month time.Month   `json:"month"`
	Day   time.Weekday `json:"day"`
}

// NewFilter returns a filter for city that keeps every month and day
func NewFilter(city string) Filter {
	return Filter{City: city, Month: AllMonths, Day: AllDays}
}

// ParseMonth converts a month name, or "all", into a filter month.
// Only the months present in the datasets are accepted.
func ParseMonth(s string) (time.Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == allKeyword {
		return AllMonths, nil
	}
	for i, m := range Months {
		if name == m {
			return time.Month(i + 1), nil
		}
	}
	return AllMonths, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// ParseDay converts a weekday name, or "all", into a filter day
func ParseDay(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == allKeyword {
		return AllDays, nil
	}
	for i, d := range Days {
		if name == d {
			// Days starts on Monday, time.Weekday starts on Sunday
			return time.Weekday((i + 1) % 7), nil
		}
	}
	return AllDays, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Matches reports whether the trip passes the month and day filters
func (f Filter) Matches(t Trip) bool {
	if f.Month != AllMonths && t.Month() != f.Month {
		return false
	}
	if f.Day != AllDays && t.Weekday() != f.Day {
		return false
	}
	return true
}

// IsAll reports whether the filter keeps every trip
func (f Filter) IsAll() bool {
	return f.Month == AllMonths && f.Day == AllDays
}

// MonthName returns the lowercase month name or "all"
func (f Filter) MonthName() string {
	if f.Month == AllMonths {
		return allKeyword
	}
	return strings.ToLower(f.Month.String())
}

// DayName returns the lowercase weekday name or "all"
func (f Filter) DayName() string {
	if f.Day == AllDays {
		return allKeyword
	}
	return strings.ToLower(f.Day.String())
}

// String renders the filter as "city / month / day"
func (f Filter) String() string {
	return fmt.Sprintf("%s / %s / %s", f.City, f.MonthName(), f.DayName())
}

// Apply returns a new table holding only the trips that match f.
// Row order is preserved and the receiver is left untouched.
func (t *Table) Apply(f Filter) *Table {
	out := &Table{
		City:         t.City,
		HasGender:    t.HasGender,
		HasBirthYear: t.HasBirthYear,
	}
	if f.IsAll() {
		out.Trips = make([]Trip, len(t.Trips))
		copy(out.Trips, t.Trips)
		return out
	}

	out.Trips = make([]Trip, 0, len(t.Trips))
	for _, tr := range t.Trips {
		if f.Matches(tr) {
			out.Trips = append(out.Trips, tr)
		}
	}
	return out
}
