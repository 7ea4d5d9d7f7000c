package stats

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yates-Labs/bikeshare/internal/trip"
)

// Helper to create test trips
func createTestTrip(start time.Time, minutes int, from, to, userType, gender string, birthYear int) trip.Trip {
	return trip.Trip{
		StartTime:    start,
		EndTime:      start.Add(time.Duration(minutes) * time.Minute),
		StartStation: from,
		EndStation:   to,
		UserType:     userType,
		Gender:       gender,
		BirthYear:    birthYear,
		HasBirthYear: birthYear != 0,
	}
}

func createTestTable() *trip.Table {
	mon := time.Date(2017, time.March, 6, 8, 15, 0, 0, time.UTC) // Monday
	tue := time.Date(2017, time.March, 7, 17, 5, 0, 0, time.UTC) // Tuesday
	sat := time.Date(2017, time.May, 6, 8, 45, 0, 0, time.UTC)   // Saturday

	return &trip.Table{
		City:         "chicago",
		HasGender:    true,
		HasBirthYear: true,
		Trips: []trip.Trip{
			createTestTrip(mon, 10, "Canal St", "Clark St", "Subscriber", "Male", 1985),
			createTestTrip(tue, 20, "Canal St", "Lake Shore Dr", "Subscriber", "Female", 1990),
			createTestTrip(sat, 30, "Streeter Dr", "Clark St", "Customer", "", 0),
			createTestTrip(mon.Add(time.Hour), 5, "Canal St", "Clark St", "Subscriber", "Male", 1990),
		},
	}
}

func TestComputeTimeStats(t *testing.T) {
	s, err := ComputeTimeStats(createTestTable())
	require.NoError(t, err)

	assert.Equal(t, time.March, s.Month)
	assert.Equal(t, 3, s.MonthCount)
	assert.Equal(t, time.Monday, s.Day)
	assert.Equal(t, 2, s.DayCount)
	assert.Equal(t, 8, s.Hour)
	assert.Equal(t, 2, s.HourCount)
}

func TestComputeStationStats(t *testing.T) {
	s, err := ComputeStationStats(createTestTable())
	require.NoError(t, err)

	assert.Equal(t, "Canal St", s.StartStation)
	assert.Equal(t, 3, s.StartCount)
	assert.Equal(t, "Clark St", s.EndStation)
	assert.Equal(t, 3, s.EndCount)
	assert.Equal(t, StationPair{Start: "Canal St", End: "Clark St"}, s.Trip)
	assert.Equal(t, 2, s.TripCount)
	assert.Equal(t, "Canal St to Clark St", s.Trip.String())
}

func TestComputeDurationStats(t *testing.T) {
	s, err := ComputeDurationStats(createTestTable())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Trips)
	assert.Equal(t, 65*time.Minute, s.Total)
	assert.Equal(t, 3900.0, s.Total.Seconds())
	assert.Equal(t, 975.0, s.Mean.Seconds())
}

func TestComputeDurationStats_MultiDayTrip(t *testing.T) {
	start := time.Date(2017, time.June, 1, 9, 0, 0, 0, time.UTC)
	table := &trip.Table{
		City: "washington",
		Trips: []trip.Trip{
			// Bike kept out for a day and an hour
			{StartTime: start, EndTime: start.Add(25 * time.Hour), StartStation: "A", EndStation: "B", UserType: "Customer"},
			{StartTime: start, EndTime: start.Add(10 * time.Minute), StartStation: "B", EndStation: "A", UserType: "Subscriber"},
		},
	}

	s, err := ComputeDurationStats(table)
	require.NoError(t, err)

	// The full day counts, not just the seconds past midnight of the difference
	assert.Equal(t, 90600.0, s.Total.Seconds())
	assert.Equal(t, 45300.0, s.Mean.Seconds())
	assert.Greater(t, s.Total, 24*time.Hour)
}

func TestComputeUserStats(t *testing.T) {
	s, err := ComputeUserStats(createTestTable())
	require.NoError(t, err)

	assert.Equal(t, []Count[string]{
		{Value: "Subscriber", Count: 3},
		{Value: "Customer", Count: 1},
	}, s.UserTypes)

	require.True(t, s.HasGender)
	assert.Equal(t, []Count[string]{
		{Value: "Male", Count: 2},
		{Value: "Female", Count: 1},
	}, s.Genders)

	require.True(t, s.HasBirthYear)
	assert.Equal(t, 1985, s.EarliestBirthYear)
	assert.Equal(t, 1990, s.LatestBirthYear)
	assert.Equal(t, 1990, s.CommonBirthYear)
}

func TestComputeUserStats_NoDemographicColumns(t *testing.T) {
	table := createTestTable()
	table.HasGender = false
	table.HasBirthYear = false

	s, err := ComputeUserStats(table)
	require.NoError(t, err)

	assert.False(t, s.HasGender)
	assert.Nil(t, s.Genders)
	assert.False(t, s.HasBirthYear)
	assert.Len(t, s.UserTypes, 2)
}

func TestComputeUserStats_ColumnPresentButEmpty(t *testing.T) {
	start := time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)
	table := &trip.Table{
		HasGender:    true,
		HasBirthYear: true,
		Trips: []trip.Trip{
			createTestTrip(start, 1, "A", "B", "Customer", "", 0),
		},
	}

	s, err := ComputeUserStats(table)
	require.NoError(t, err)
	assert.True(t, s.HasGender)
	assert.Empty(t, s.Genders)
	assert.False(t, s.HasBirthYear)
}

func TestCompute_EmptyTable(t *testing.T) {
	empty := &trip.Table{City: "chicago"}

	_, err := ComputeTimeStats(empty)
	assert.ErrorIs(t, err, ErrNoTrips)
	_, err = ComputeStationStats(empty)
	assert.ErrorIs(t, err, ErrNoTrips)
	_, err = ComputeDurationStats(empty)
	assert.ErrorIs(t, err, ErrNoTrips)
	_, err = ComputeUserStats(empty)
	assert.ErrorIs(t, err, ErrNoTrips)
}

func TestAnalyze(t *testing.T) {
	f := trip.Filter{City: "new york city", Month: time.March, Day: trip.AllDays}
	report, err := Analyze(createTestTable(), f)
	require.NoError(t, err)

	assert.Equal(t, "new_york_city-march-all", report.ID)
	assert.Equal(t, 4, report.Trips)
	assert.Equal(t, time.March, report.Time.Month)
	assert.Equal(t, "Canal St", report.Stations.StartStation)
	assert.Equal(t, 65*time.Minute, report.Durations.Total)
	assert.Len(t, report.Users.UserTypes, 2)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(&trip.Table{}, trip.NewFilter("chicago"))
	assert.ErrorIs(t, err, ErrNoTrips)
}

func TestExportReport(t *testing.T) {
	report, err := Analyze(createTestTable(), trip.NewFilter("chicago"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportReport(report, "JSON", &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "chicago-all-all", decoded["id"])
	assert.Equal(t, "all", decoded["month"])

	times := decoded["popular_times"].(map[string]any)
	assert.Equal(t, "March", times["month"])
	assert.Equal(t, "Monday", times["day"])

	users := decoded["users"].(map[string]any)
	assert.Equal(t, float64(1985), users["earliest_birth_year"])

	durations := decoded["durations"].(map[string]any)
	assert.Equal(t, 3900.0, durations["total_seconds"])
}

func TestExportReport_OmitsMissingDemographics(t *testing.T) {
	table := createTestTable()
	table.HasGender = false
	table.HasBirthYear = false
	report, err := Analyze(table, trip.NewFilter("washington"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportReport(report, "json", &buf))
	assert.NotContains(t, buf.String(), "genders")
	assert.NotContains(t, buf.String(), "birth_year")
}

func TestExportReport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := ExportReport(&Report{}, "xml", &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseExportFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "supported: json")
}
