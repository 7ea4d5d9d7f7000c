package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yates-Labs/bikeshare/internal/stats"
	"github.com/Yates-Labs/bikeshare/internal/trip"
)

func testReport() *stats.Report {
	return &stats.Report{
		ID:     "chicago-march-all",
		Filter: trip.Filter{City: "chicago", Month: time.March, Day: trip.AllDays},
		Trips:  12345,
		Time: stats.TimeStats{
			Month: time.March, MonthCount: 12345,
			Day: time.Tuesday, DayCount: 2100,
			Hour: 17, HourCount: 1500,
			Elapsed: 1500 * time.Microsecond,
		},
		Stations: stats.StationStats{
			StartStation: "Streeter Dr & Grand Ave", StartCount: 300,
			EndStation: "Clinton St & Washington Blvd", EndCount: 280,
			Trip:      stats.StationPair{Start: "Lake Shore Dr & Monroe St", End: "Streeter Dr & Grand Ave"},
			TripCount: 45,
		},
		Durations: stats.DurationStats{
			Trips: 12345,
			Total: 3900 * time.Second,
			Mean:  975 * time.Second,
		},
		Users: stats.UserStats{
			UserTypes: []stats.Count[string]{
				{Value: "Subscriber", Count: 10000},
				{Value: "Customer", Count: 2345},
			},
			HasGender: true,
			Genders: []stats.Count[string]{
				{Value: "Male", Count: 7000},
				{Value: "Female", Count: 3000},
			},
			HasBirthYear:      true,
			EarliestBirthYear: 1899,
			LatestBirthYear:   2016,
			CommonBirthYear:   1989,
		},
	}
}

func TestRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Report(testReport())
	out := buf.String()

	expected := []string{
		"12,345 trips for Chicago, March, every day",
		"Calculating The Most Frequent Times of Travel...",
		"The most common month was March",
		"The most common day of the week was Tuesday",
		"The most common start hour was 17:00",
		"Calculating The Most Popular Stations and Trip...",
		"Streeter Dr & Grand Ave",
		"Lake Shore Dr & Monroe St to Streeter Dr & Grand Ave",
		"Calculating Trip Duration...",
		"The total travel time was 3,900 seconds (1h5m0s)",
		"The average travel time was 975 seconds (16m15s)",
		"Calculating User Stats...",
		"Subscriber",
		"10,000",
		"Female",
		"The earliest year of birth was 1899",
		"The most recent year of birth was 2016",
		"The most common year of birth was 1989",
		"This took 0.001500 seconds.",
	}
	for _, want := range expected {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, 4, strings.Count(out, strings.Repeat("-", 40)))
}

func TestRenderer_UserStatsWithoutDemographics(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).UserStats(stats.UserStats{
		UserTypes: []stats.Count[string]{{Value: "Subscriber", Count: 2}},
	})
	out := buf.String()

	assert.Contains(t, out, "No gender data available")
	assert.Contains(t, out, "No birth year data available")
	assert.NotContains(t, out, "earliest year of birth")
}

func TestRenderer_EmptyCounts(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).UserStats(stats.UserStats{HasGender: true})

	assert.Contains(t, buf.String(), "(none)")
}

func TestRenderer_Trips(t *testing.T) {
	start := time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC)
	trips := []trip.Trip{
		{StartTime: start, EndTime: start.Add(5 * time.Minute), StartStation: "Wood St", EndStation: "Damen Ave", UserType: "Subscriber", Gender: "Male", BirthYear: 1992, HasBirthYear: true},
		{StartTime: start, EndTime: start.Add(time.Minute), StartStation: "May St", EndStation: "Taylor St", UserType: "Customer"},
	}

	var buf bytes.Buffer
	New(&buf).Trips(trips, 5)
	out := buf.String()

	assert.Contains(t, out, "2017-06-23 15:09:32")
	assert.Contains(t, out, "Wood St")
	assert.Contains(t, out, "1992")
	assert.Contains(t, out, "6")
	assert.Contains(t, out, "7")
}

func TestRenderer_TripsEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Trips(nil, 0)
	assert.Contains(t, buf.String(), "No more trips to show.")
}

func TestRenderer_Narrative(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Narrative("  Riders love March.  \n")
	assert.Contains(t, buf.String(), "Summary:")
	assert.Contains(t, buf.String(), "Riders love March.")
}

func TestDescribeFilter(t *testing.T) {
	assert.Equal(t, "New York City, all months, every day", describeFilter(trip.NewFilter("new york city")))
	assert.Equal(t, "Washington, June, Sundays",
		describeFilter(trip.Filter{City: "washington", Month: time.June, Day: time.Sunday}))
}

func TestRenderer_TableAndSuccess(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Table([]string{"CITY", "STATUS"}, [][]string{{"Chicago", "ok"}, {"Washington", "missing"}})
	r.Success("Exported report")
	out := buf.String()

	assert.Contains(t, out, "CITY")
	assert.Contains(t, out, "Washington")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "✓ Exported report")
}
