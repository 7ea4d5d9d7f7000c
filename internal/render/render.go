// Package render prints statistics reports and raw trip rows to a terminal
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/Yates-Labs/bikeshare/internal/prompt"
	"github.com/Yates-Labs/bikeshare/internal/stats"
	"github.com/Yates-Labs/bikeshare/internal/trip"
)

// Palette
var (
	headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
	valueColor   = lipgloss.Color("#BD93F9") // Purple
	numberColor  = lipgloss.Color("#FF79C6") // Pink
	borderColor  = lipgloss.Color("#6272A4") // Muted purple
	summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	warnColor    = lipgloss.Color("#FFB86C") // Orange
	successColor = lipgloss.Color("#50FA7B") // Green
)

// Renderer writes styled output to a single writer
type Renderer struct {
	out io.Writer

	heading lipgloss.Style
	value   lipgloss.Style
	number  lipgloss.Style
	border  lipgloss.Style
	summary lipgloss.Style
	warn    lipgloss.Style
	success lipgloss.Style
	cell    lipgloss.Style
	head    lipgloss.Style
}

// New creates a renderer for out.
// Colors are dropped automatically when out is not a color terminal.
func New(out io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(out)
	return &Renderer{
		out:     out,
		heading: lr.NewStyle().Foreground(headerColor).Bold(true),
		value:   lr.NewStyle().Foreground(valueColor),
		number:  lr.NewStyle().Foreground(numberColor),
		border:  lr.NewStyle().Foreground(borderColor),
		summary: lr.NewStyle().Foreground(summaryColor).Italic(true),
		warn:    lr.NewStyle().Foreground(warnColor).Bold(true),
		success: lr.NewStyle().Foreground(successColor),
		cell:    lr.NewStyle().Padding(0, 1),
		head:    lr.NewStyle().Foreground(headerColor).Bold(true).Padding(0, 1),
	}
}

// Report prints all four statistics sections
func (r *Renderer) Report(rep *stats.Report) {
	r.println(r.summary.Render(fmt.Sprintf("%s trips for %s",
		humanize.Comma(int64(rep.Trips)), describeFilter(rep.Filter))))
	r.TimeStats(rep.Time)
	r.StationStats(rep.Stations)
	r.DurationStats(rep.Durations)
	r.UserStats(rep.Users)
}

// TimeStats prints the most frequent times of travel
func (r *Renderer) TimeStats(s stats.TimeStats) {
	r.sectionStart("Calculating The Most Frequent Times of Travel...")
	r.line("The most common month was", s.Month.String(), s.MonthCount)
	r.line("The most common day of the week was", s.Day.String(), s.DayCount)
	r.line("The most common start hour was", formatHour(s.Hour), s.HourCount)
	r.sectionEnd(s.Elapsed)
}

// StationStats prints the most popular stations and trip
func (r *Renderer) StationStats(s stats.StationStats) {
	r.sectionStart("Calculating The Most Popular Stations and Trip...")
	r.line("The most commonly used start station was", s.StartStation, s.StartCount)
	r.line("The most commonly used end station was", s.EndStation, s.EndCount)
	r.line("The most frequent trip was", s.Trip.String(), s.TripCount)
	r.sectionEnd(s.Elapsed)
}

// DurationStats prints total and mean travel time in seconds
func (r *Renderer) DurationStats(s stats.DurationStats) {
	r.sectionStart("Calculating Trip Duration...")
	r.println(fmt.Sprintf("The total travel time was %s seconds (%s)",
		r.number.Render(humanize.CommafWithDigits(s.Total.Seconds(), 2)),
		roundDuration(s.Total)))
	r.println(fmt.Sprintf("The average travel time was %s seconds (%s)",
		r.number.Render(humanize.CommafWithDigits(s.Mean.Seconds(), 2)),
		roundDuration(s.Mean)))
	r.sectionEnd(s.Elapsed)
}

// UserStats prints user type and gender counts and birth year extremes
func (r *Renderer) UserStats(s stats.UserStats) {
	r.sectionStart("Calculating User Stats...")

	r.println("User types:")
	r.counts("USER TYPE", s.UserTypes)

	r.println("")
	if !s.HasGender {
		r.println(r.warn.Render("No gender data available for this city."))
	} else {
		r.println("Gender counts:")
		r.counts("GENDER", s.Genders)
	}

	r.println("")
	if !s.HasBirthYear {
		r.println(r.warn.Render("No birth year data available for this selection."))
	} else {
		r.println(fmt.Sprintf("The earliest year of birth was %s", r.value.Render(strconv.Itoa(s.EarliestBirthYear))))
		r.println(fmt.Sprintf("The most recent year of birth was %s", r.value.Render(strconv.Itoa(s.LatestBirthYear))))
		r.println(fmt.Sprintf("The most common year of birth was %s", r.value.Render(strconv.Itoa(s.CommonBirthYear))))
	}

	r.sectionEnd(s.Elapsed)
}

// Trips prints a page of raw trip rows; offset numbers the first row
func (r *Renderer) Trips(trips []trip.Trip, offset int) {
	if len(trips) == 0 {
		r.println(r.warn.Render("No more trips to show."))
		return
	}

	rows := make([][]string, 0, len(trips))
	for i, tr := range trips {
		gender := tr.Gender
		if gender == "" {
			gender = "-"
		}
		birthYear := "-"
		if tr.HasBirthYear {
			birthYear = strconv.Itoa(tr.BirthYear)
		}
		rows = append(rows, []string{
			strconv.Itoa(offset + i + 1),
			tr.StartTime.Format(time.DateTime),
			tr.EndTime.Format(time.DateTime),
			tr.StartStation,
			tr.EndStation,
			tr.UserType,
			gender,
			birthYear,
		})
	}

	t := r.table().
		Headers("#", "START", "END", "FROM", "TO", "USER TYPE", "GENDER", "BORN").
		Rows(rows...)
	r.println(t.Render())
}

// Narrative prints a generated summary under a heading
func (r *Renderer) Narrative(text string) {
	r.println("")
	r.println(r.heading.Render("Summary:"))
	r.println("")
	r.println(strings.TrimSpace(text))
	r.println("")
}

// Notice prints a highlighted one-line message
func (r *Renderer) Notice(msg string) {
	r.println(r.warn.Render(msg))
}

// Success prints a confirmation line
func (r *Renderer) Success(msg string) {
	r.println(r.success.Render("✓ " + msg))
}

// Table prints rows under headers in the report table style
func (r *Renderer) Table(headers []string, rows [][]string) {
	r.println(r.table().Headers(headers...).Rows(rows...).Render())
}

func (r *Renderer) counts(label string, counts []stats.Count[string]) {
	if len(counts) == 0 {
		r.println(r.warn.Render("(none)"))
		return
	}
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Value, humanize.Comma(int64(c.Count))}
	}
	r.println(r.table().Headers(label, "TRIPS").Rows(rows...).Render())
}

func (r *Renderer) table() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.head
			}
			return r.cell
		})
}

func (r *Renderer) sectionStart(title string) {
	r.println("")
	r.println(r.heading.Render(title))
	r.println("")
}

func (r *Renderer) sectionEnd(elapsed time.Duration) {
	r.println("")
	r.println(fmt.Sprintf("This took %.6f seconds.", elapsed.Seconds()))
	r.println(r.border.Render(prompt.Separator))
}

func (r *Renderer) line(label, value string, count int) {
	r.println(fmt.Sprintf("%s %s (%s trips)", label, r.value.Render(value), r.number.Render(humanize.Comma(int64(count)))))
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

func describeFilter(f trip.Filter) string {
	month := "all months"
	if f.Month != trip.AllMonths {
		month = f.Month.String()
	}
	day := "every day"
	if f.Day != trip.AllDays {
		day = f.Day.String() + "s"
	}
	return fmt.Sprintf("%s, %s, %s", prompt.Title(f.City), month, day)
}

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func roundDuration(d time.Duration) time.Duration {
	if d >= time.Hour {
		return d.Round(time.Minute)
	}
	return d.Round(time.Second)
}
