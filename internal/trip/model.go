// Package trip holds the bikeshare trip table: loading it from a city CSV,
// deriving time fields from each trip's start time, and filtering rows by
// month and day of week.
package trip

import (
	"time"
)

// Trip is a single bikeshare ride
type Trip struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	UserType     string    `json:"user_type"`

	// Gender is empty when the source has no value for this trip
	Gender string `json:"gender,omitempty"`

	BirthYear    int  `json:"birth_year,omitempty"`
	HasBirthYear bool `json:"-"`
}

// Month returns the month the trip started in
func (t Trip) Month() time.Month {
	return t.StartTime.Month()
}

// Weekday returns the day of week the trip started on
func (t Trip) Weekday() time.Weekday {
	return t.StartTime.Weekday()
}

// Hour returns the hour of day (0-23) the trip started in
func (t Trip) Hour() int {
	return t.StartTime.Hour()
}

// Duration returns the elapsed time between start and end
func (t Trip) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// Table is the ordered set of trips loaded for one city
type Table struct {
	City  string `json:"city"`
	Trips []Trip `json:"trips"`

	// Washington data ships without these columns
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// Len returns the number of trips in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Trips)
}

// Page returns up to size trips starting at offset.
// Returns nil once offset is past the end of the table.
func (t *Table) Page(offset, size int) []Trip {
	if t == nil || offset < 0 || size <= 0 || offset >= len(t.Trips) {
		return nil
	}
	end := offset + size
	if end > len(t.Trips) {
		end = len(t.Trips)
	}
	return t.Trips[offset:end]
}
