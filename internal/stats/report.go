package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/Yates-Labs/bikeshare/internal/trip"
)

// Report gathers every statistics pass for one filtered table
type Report struct {
	ID          string
	Filter      trip.Filter
	Trips       int
	Time        TimeStats
	Stations    StationStats
	Durations   DurationStats
	Users       UserStats
	GeneratedAt time.Time
}

// ReportID builds a stable identifier such as "chicago-june-all"
func ReportID(f trip.Filter) string {
	city := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(f.City)), " ", "_")
	return fmt.Sprintf("%s-%s-%s", city, f.MonthName(), f.DayName())
}

// Analyze runs the four statistics passes over an already filtered table.
// Returns ErrNoTrips when the table is empty.
func Analyze(t *trip.Table, f trip.Filter) (*Report, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", f, ErrNoTrips)
	}

	timeStats, err := ComputeTimeStats(t)
	if err != nil {
		return nil, fmt.Errorf("time stats: %w", err)
	}
	stationStats, err := ComputeStationStats(t)
	if err != nil {
		return nil, fmt.Errorf("station stats: %w", err)
	}
	durationStats, err := ComputeDurationStats(t)
	if err != nil {
		return nil, fmt.Errorf("duration stats: %w", err)
	}
	userStats, err := ComputeUserStats(t)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &Report{
		ID:          ReportID(f),
		Filter:      f,
		Trips:       t.Len(),
		Time:        timeStats,
		Stations:    stationStats,
		Durations:   durationStats,
		Users:       userStats,
		GeneratedAt: time.Now(),
	}, nil
}
