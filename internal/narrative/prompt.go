package narrative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yates-Labs/bikeshare/internal/stats"
)

var (
	ErrMissingReport = errors.New("report required for narrative")
)

// AssemblePrompt builds the LLM prompt for report.
// baseline, when non-nil, is the same city without month/day filters and is
// offered as background for comparison.
func AssemblePrompt(report *stats.Report, baseline *stats.Report) (string, error) {
	if report == nil {
		return "", ErrMissingReport
	}

	var b strings.Builder

	b.WriteString("You are a data analyst writing for a city bikeshare operator. ")
	b.WriteString("Your task is to explain, in plain language, what the following ride statistics ")
	b.WriteString("say about how and when people use the service.\n\n")

	b.WriteString("# Selection to Summarize\n\n")
	b.WriteString(fmt.Sprintf("**Report ID:** %s\n\n", report.ID))
	writeReport(&b, report)

	if baseline != nil && baseline.ID != report.ID {
		b.WriteString("# Whole-City Baseline\n\n")
		b.WriteString("The same city with no month or day filter, for comparison:\n\n")
		b.WriteString(fmt.Sprintf("**Report ID:** %s\n\n", baseline.ID))
		writeReport(&b, baseline)
	}

	b.WriteString("# Task\n\n")
	b.WriteString("Write a short summary (1-2 paragraphs) that:\n")
	b.WriteString("1. Describes when riders travel and which stations and routes are busiest\n")
	b.WriteString("2. Comments on typical trip length\n")
	b.WriteString("3. Describes who the riders are, where demographic data exists\n\n")
	b.WriteString("Use only the numbers given above. Do not invent causes or figures. ")
	b.WriteString("If a baseline is provided, point out notable differences from it.\n")

	return b.String(), nil
}

func writeReport(b *strings.Builder, r *stats.Report) {
	b.WriteString(fmt.Sprintf("**City:** %s\n", r.Filter.City))
	b.WriteString(fmt.Sprintf("**Month filter:** %s\n", r.Filter.MonthName()))
	b.WriteString(fmt.Sprintf("**Day filter:** %s\n", r.Filter.DayName()))
	b.WriteString(fmt.Sprintf("**Trips:** %d\n\n", r.Trips))

	b.WriteString("**Popular Times:**\n")
	b.WriteString(fmt.Sprintf("- month: %s (%d trips)\n", r.Time.Month, r.Time.MonthCount))
	b.WriteString(fmt.Sprintf("- day of week: %s (%d trips)\n", r.Time.Day, r.Time.DayCount))
	b.WriteString(fmt.Sprintf("- start hour: %02d:00 (%d trips)\n\n", r.Time.Hour, r.Time.HourCount))

	b.WriteString("**Popular Stations:**\n")
	b.WriteString(fmt.Sprintf("- start: %s (%d trips)\n", r.Stations.StartStation, r.Stations.StartCount))
	b.WriteString(fmt.Sprintf("- end: %s (%d trips)\n", r.Stations.EndStation, r.Stations.EndCount))
	b.WriteString(fmt.Sprintf("- trip: %s (%d trips)\n\n", r.Stations.Trip, r.Stations.TripCount))

	b.WriteString("**Trip Duration:**\n")
	b.WriteString(fmt.Sprintf("- total: %.0f seconds\n", r.Durations.Total.Seconds()))
	b.WriteString(fmt.Sprintf("- mean: %.1f seconds\n\n", r.Durations.Mean.Seconds()))

	b.WriteString("**User Types:**\n")
	writeCounts(b, r.Users.UserTypes)

	if r.Users.HasGender {
		b.WriteString("**Genders:**\n")
		writeCounts(b, r.Users.Genders)
	} else {
		b.WriteString("**Genders:** N/A\n\n")
	}

	if r.Users.HasBirthYear {
		b.WriteString(fmt.Sprintf("**Birth Years:** earliest %d, latest %d, most common %d\n\n",
			r.Users.EarliestBirthYear, r.Users.LatestBirthYear, r.Users.CommonBirthYear))
	} else {
		b.WriteString("**Birth Years:** N/A\n\n")
	}
}

func writeCounts(b *strings.Builder, counts []stats.Count[string]) {
	if len(counts) == 0 {
		b.WriteString("- (none)\n\n")
		return
	}
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("- %s: %d\n", c.Value, c.Count))
	}
	b.WriteString("\n")
}
