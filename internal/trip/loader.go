package trip

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// DefaultTimeLayout matches the "Start Time" / "End Time" columns of the city files
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Column headers of the city files
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrEmptyFile     = errors.New("empty trip file")
)

var requiredColumns = []string{ColStartTime, ColEndTime, ColStartStation, ColEndStation, ColUserType}

// LoadOptions controls how a city file is read
type LoadOptions struct {
	// City is recorded on the resulting table
	City string

	// TimeLayout parses start and end times; DefaultTimeLayout when empty
	TimeLayout string

	// Location for parsed times; UTC when nil
	Location *time.Location

	// Progress receives a byte progress bar while LoadFile reads.
	// Nil disables the bar.
	Progress io.Writer

	Logger *zap.Logger
}

func (o LoadOptions) layout() string {
	if o.TimeLayout == "" {
		return DefaultTimeLayout
	}
	return o.TimeLayout
}

func (o LoadOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o LoadOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// LoadFile opens path and loads its trips
func LoadFile(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trip file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if opts.Progress != nil {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat trip file: %w", err)
		}
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetDescription("loading "+filepath.Base(path)),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		r = io.TeeReader(f, bar)
	}

	table, err := Load(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Load reads a city CSV with a header row into a Table.
// Columns are matched by header name; unknown columns are ignored.
func Load(r io.Reader, opts LoadOptions) (*Table, error) {
	log := opts.logger()
	layout := opts.layout()
	loc := opts.location()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	genderIdx, hasGender := index[ColGender]
	birthIdx, hasBirth := index[ColBirthYear]

	table := &Table{
		City:         opts.City,
		HasGender:    hasGender,
		HasBirthYear: hasBirth,
	}

	field := func(rec []string, i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	skippedYears := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read trip row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		start, err := time.ParseInLocation(layout, field(rec, index[ColStartTime]), loc)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: start time: %w", ErrMalformedRow, line, err)
		}
		end, err := time.ParseInLocation(layout, field(rec, index[ColEndTime]), loc)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: end time: %w", ErrMalformedRow, line, err)
		}

		tr := Trip{
			StartTime:    start,
			EndTime:      end,
			StartStation: field(rec, index[ColStartStation]),
			EndStation:   field(rec, index[ColEndStation]),
			UserType:     field(rec, index[ColUserType]),
		}
		if hasGender {
			tr.Gender = field(rec, genderIdx)
		}
		if hasBirth {
			if raw := field(rec, birthIdx); raw != "" {
				year, ok := parseBirthYear(raw)
				if ok {
					tr.BirthYear = year
					tr.HasBirthYear = true
				} else {
					skippedYears++
				}
			}
		}

		table.Trips = append(table.Trips, tr)
	}

	if skippedYears > 0 {
		log.Warn("ignored unparsable birth years",
			zap.String("city", opts.City),
			zap.Int("count", skippedYears))
	}
	log.Debug("loaded trip table",
		zap.String("city", opts.City),
		zap.Int("trips", len(table.Trips)),
		zap.Bool("gender", hasGender),
		zap.Bool("birth_year", hasBirth))

	return table, nil
}

// parseBirthYear accepts "1992" as well as the float form "1992.0"
func parseBirthYear(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
