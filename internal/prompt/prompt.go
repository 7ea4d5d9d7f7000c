// Package prompt asks the user for the city and time filters on an
// interactive terminal, re-asking until every answer is valid.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Yates-Labs/bikeshare/internal/trip"
)

// ErrInputClosed is returned once the input stream reaches EOF
var ErrInputClosed = errors.New("input closed")

// Separator is printed between prompt blocks and statistics sections
var Separator = strings.Repeat("-", 40)

var titleCaser = cases.Title(language.English)

// Prompter reads answers line by line from in and writes questions to out
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	cities  []string
}

// New creates a prompter offering the given city names
func New(in io.Reader, out io.Writer, cities []string) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
		cities:  lo.Map(cities, func(c string, _ int) string { return strings.ToLower(strings.TrimSpace(c)) }),
	}
}

// AskFilter asks for a city, a month and a day of week
func (p *Prompter) AskFilter() (trip.Filter, error) {
	fmt.Fprintln(p.out, "\nHello! Let's explore some US bikeshare data!")

	city, err := p.askChoice(
		fmt.Sprintf("Would you like to see data for %s? ", joinChoices(p.cities)),
		func(answer string) (string, bool) {
			return answer, lo.Contains(p.cities, answer)
		})
	if err != nil {
		return trip.Filter{}, err
	}
	fmt.Fprintf(p.out, "Looking at %s.\n\n", Title(city))

	filter := trip.NewFilter(city)

	monthQuestion := fmt.Sprintf("Which month would you like to see?\nChoose from: All, %s ",
		strings.Join(lo.Map(trip.Months, func(m string, _ int) string { return Title(m) }), ", "))
	if _, err := p.askChoice(monthQuestion, func(answer string) (string, bool) {
		month, err := trip.ParseMonth(answer)
		if err != nil {
			return "", false
		}
		filter.Month = month
		return answer, true
	}); err != nil {
		return trip.Filter{}, err
	}

	dayQuestion := fmt.Sprintf("Which day would you like to see?\nChoose from: All, %s ",
		strings.Join(lo.Map(trip.Days, func(d string, _ int) string { return Title(d) }), ", "))
	if _, err := p.askChoice(dayQuestion, func(answer string) (string, bool) {
		day, err := trip.ParseDay(answer)
		if err != nil {
			return "", false
		}
		filter.Day = day
		return answer, true
	}); err != nil {
		return trip.Filter{}, err
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, Separator)
	return filter, nil
}

// AskRestart asks whether to run another analysis.
// Anything other than "yes" ends the session, including "y".
func (p *Prompter) AskRestart() (bool, error) {
	answer, err := p.readLine("\nWould you like to restart? Enter yes or no.\n")
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}

// AskYesNo returns true only when the answer is "yes" or "y"
func (p *Prompter) AskYesNo(question string) (bool, error) {
	answer, err := p.readLine(question)
	if err != nil {
		return false, err
	}
	return answer == "yes" || answer == "y", nil
}

// askChoice repeats question until accept reports the normalized answer as valid
func (p *Prompter) askChoice(question string, accept func(answer string) (string, bool)) (string, error) {
	for {
		answer, err := p.readLine(question)
		if err != nil {
			return "", err
		}
		if value, ok := accept(answer); ok {
			return value, nil
		}
		fmt.Fprintf(p.out, "Sorry, %q is not one of the options.\n", answer)
	}
}

// readLine prints question and returns the next trimmed, lowercased line
func (p *Prompter) readLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.ToLower(strings.TrimSpace(p.scanner.Text())), nil
}

// Title capitalizes each word of a city, month or day name
func Title(s string) string {
	return titleCaser.String(s)
}

// joinChoices renders ["a", "b", "c"] as "A, B, or C"
func joinChoices(choices []string) string {
	titled := lo.Map(choices, func(c string, _ int) string { return Title(c) })
	switch len(titled) {
	case 0:
		return ""
	case 1:
		return titled[0]
	case 2:
		return titled[0] + " or " + titled[1]
	}
	return strings.Join(titled[:len(titled)-1], ", ") + ", or " + titled[len(titled)-1]
}
