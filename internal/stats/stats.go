// Package stats computes the descriptive statistics shown for a filtered trip
// table: popular travel times, popular stations, trip durations and rider
// demographics. Each pass is read-only and independent of the others.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/Yates-Labs/bikeshare/internal/trip"
)

var (
	ErrNoTrips = errors.New("no trips match the selected filters")
)

// TimeStats holds the most frequent times of travel
type TimeStats struct {
	Month      time.Month
	MonthCount int
	Day        time.Weekday
	DayCount   int
	Hour       int
	HourCount  int
	Elapsed    time.Duration
}

// StationPair is a start station and end station combination
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (p StationPair) String() string {
	return fmt.Sprintf("%s to %s", p.Start, p.End)
}

// StationStats holds the most popular stations and trip
type StationStats struct {
	StartStation string
	StartCount   int
	EndStation   string
	EndCount     int
	Trip         StationPair
	TripCount    int
	Elapsed      time.Duration
}

// DurationStats holds total and mean travel time
type DurationStats struct {
	Trips   int
	Total   time.Duration
	Mean    time.Duration
	Elapsed time.Duration
}

// UserStats holds rider demographics.
// Gender and birth year fields are only meaningful when the matching Has flag is set.
type UserStats struct {
	UserTypes []Count[string]

	HasGender bool
	Genders   []Count[string]

	HasBirthYear      bool
	EarliestBirthYear int
	LatestBirthYear   int
	CommonBirthYear   int

	Elapsed time.Duration
}

// ComputeTimeStats finds the most common month, day of week and start hour
func ComputeTimeStats(t *trip.Table) (TimeStats, error) {
	if t.Len() == 0 {
		return TimeStats{}, ErrNoTrips
	}
	started := time.Now()

	months := NewCounter[time.Month]()
	days := NewCounter[time.Weekday]()
	hours := NewCounter[int]()
	for _, tr := range t.Trips {
		months.Add(tr.Month())
		days.Add(tr.Weekday())
		hours.Add(tr.Hour())
	}

	var s TimeStats
	s.Month, s.MonthCount, _ = months.Mode()
	s.Day, s.DayCount, _ = days.Mode()
	s.Hour, s.HourCount, _ = hours.Mode()
	s.Elapsed = time.Since(started)
	return s, nil
}

// ComputeStationStats finds the most used start station, end station and
// start/end combination
func ComputeStationStats(t *trip.Table) (StationStats, error) {
	if t.Len() == 0 {
		return StationStats{}, ErrNoTrips
	}
	started := time.Now()

	starts := NewCounter[string]()
	ends := NewCounter[string]()
	pairs := NewCounter[StationPair]()
	for _, tr := range t.Trips {
		if tr.StartStation != "" {
			starts.Add(tr.StartStation)
		}
		if tr.EndStation != "" {
			ends.Add(tr.EndStation)
		}
		if tr.StartStation != "" && tr.EndStation != "" {
			pairs.Add(StationPair{Start: tr.StartStation, End: tr.EndStation})
		}
	}

	var s StationStats
	s.StartStation, s.StartCount, _ = starts.Mode()
	s.EndStation, s.EndCount, _ = ends.Mode()
	s.Trip, s.TripCount, _ = pairs.Mode()
	s.Elapsed = time.Since(started)
	return s, nil
}

// ComputeDurationStats sums and averages end minus start for every trip
func ComputeDurationStats(t *trip.Table) (DurationStats, error) {
	if t.Len() == 0 {
		return DurationStats{}, ErrNoTrips
	}
	started := time.Now()

	total := lo.SumBy(t.Trips, func(tr trip.Trip) time.Duration {
		return tr.Duration()
	})

	return DurationStats{
		Trips:   t.Len(),
		Total:   total,
		Mean:    total / time.Duration(t.Len()),
		Elapsed: time.Since(started),
	}, nil
}

// ComputeUserStats counts user types and genders and summarizes birth years.
// Blank values are left out of every count.
func ComputeUserStats(t *trip.Table) (UserStats, error) {
	if t.Len() == 0 {
		return UserStats{}, ErrNoTrips
	}
	started := time.Now()

	userTypes := NewCounter[string]()
	genders := NewCounter[string]()
	years := NewCounter[int]()
	for _, tr := range t.Trips {
		if tr.UserType != "" {
			userTypes.Add(tr.UserType)
		}
		if t.HasGender && tr.Gender != "" {
			genders.Add(tr.Gender)
		}
		if t.HasBirthYear && tr.HasBirthYear {
			years.Add(tr.BirthYear)
		}
	}

	s := UserStats{
		UserTypes: userTypes.Counts(),
		HasGender: t.HasGender,
	}
	if t.HasGender {
		s.Genders = genders.Counts()
	}

	if years.Len() > 0 {
		known := lo.Map(years.Counts(), func(c Count[int], _ int) int { return c.Value })
		s.HasBirthYear = true
		s.EarliestBirthYear = lo.Min(known)
		s.LatestBirthYear = lo.Max(known)
		s.CommonBirthYear, _, _ = years.Mode()
	}

	s.Elapsed = time.Since(started)
	return s, nil
}
