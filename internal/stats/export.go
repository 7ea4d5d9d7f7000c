package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// ReportExport is the serialized form of a Report with names instead of enum values
type ReportExport struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Month       string    `json:"month"`
	Day         string    `json:"day"`
	Trips       int       `json:"trips"`
	GeneratedAt time.Time `json:"generated_at"`

	PopularTimes struct {
		Month      string `json:"month"`
		MonthCount int    `json:"month_count"`
		Day        string `json:"day"`
		DayCount   int    `json:"day_count"`
		Hour       int    `json:"hour"`
		HourCount  int    `json:"hour_count"`
	} `json:"popular_times"`

	Stations struct {
		Start      string      `json:"start"`
		StartCount int         `json:"start_count"`
		End        string      `json:"end"`
		EndCount   int         `json:"end_count"`
		Trip       StationPair `json:"trip"`
		TripCount  int         `json:"trip_count"`
	} `json:"stations"`

	Durations struct {
		TotalSeconds float64 `json:"total_seconds"`
		MeanSeconds  float64 `json:"mean_seconds"`
	} `json:"durations"`

	Users struct {
		UserTypes         []Count[string] `json:"user_types"`
		Genders           []Count[string] `json:"genders,omitempty"`
		EarliestBirthYear *int            `json:"earliest_birth_year,omitempty"`
		LatestBirthYear   *int            `json:"latest_birth_year,omitempty"`
		CommonBirthYear   *int            `json:"common_birth_year,omitempty"`
	} `json:"users"`
}

// ErrUnsupportedFormat is returned for export formats other than json
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseExportFormat validates a format name, case-insensitively
func ParseExportFormat(format string) (ExportFormat, error) {
	exportFormat := ExportFormat(strings.ToLower(strings.TrimSpace(format)))
	if exportFormat != FormatJSON {
		return "", fmt.Errorf("%w: %s (supported: json)", ErrUnsupportedFormat, format)
	}
	return exportFormat, nil
}

// ExportReport writes the report in the given format
func ExportReport(report *Report, format string, writer io.Writer) error {
	if _, err := ParseExportFormat(format); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("export failed: report is nil")
	}

	return exportJSON(toExport(report), writer)
}

func toExport(r *Report) ReportExport {
	var e ReportExport
	e.ID = r.ID
	e.City = r.Filter.City
	e.Month = r.Filter.MonthName()
	e.Day = r.Filter.DayName()
	e.Trips = r.Trips
	e.GeneratedAt = r.GeneratedAt

	e.PopularTimes.Month = r.Time.Month.String()
	e.PopularTimes.MonthCount = r.Time.MonthCount
	e.PopularTimes.Day = r.Time.Day.String()
	e.PopularTimes.DayCount = r.Time.DayCount
	e.PopularTimes.Hour = r.Time.Hour
	e.PopularTimes.HourCount = r.Time.HourCount

	e.Stations.Start = r.Stations.StartStation
	e.Stations.StartCount = r.Stations.StartCount
	e.Stations.End = r.Stations.EndStation
	e.Stations.EndCount = r.Stations.EndCount
	e.Stations.Trip = r.Stations.Trip
	e.Stations.TripCount = r.Stations.TripCount

	e.Durations.TotalSeconds = r.Durations.Total.Seconds()
	e.Durations.MeanSeconds = r.Durations.Mean.Seconds()

	e.Users.UserTypes = r.Users.UserTypes
	if r.Users.HasGender {
		e.Users.Genders = r.Users.Genders
	}
	if r.Users.HasBirthYear {
		earliest, latest, common := r.Users.EarliestBirthYear, r.Users.LatestBirthYear, r.Users.CommonBirthYear
		e.Users.EarliestBirthYear = &earliest
		e.Users.LatestBirthYear = &latest
		e.Users.CommonBirthYear = &common
	}
	return e
}

// exportJSON writes the report as indented JSON
func exportJSON(export ReportExport, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}
