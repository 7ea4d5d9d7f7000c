// Package explorer runs the bikeshare session: ask for filters, load the
// city's trips, compute statistics, print them and offer raw rows.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Yates-Labs/bikeshare/internal/config"
	"github.com/Yates-Labs/bikeshare/internal/prompt"
	"github.com/Yates-Labs/bikeshare/internal/render"
	"github.com/Yates-Labs/bikeshare/internal/stats"
	"github.com/Yates-Labs/bikeshare/internal/trip"
)

const rawDataQuestion = "\nWould you like to see %d lines of raw data? Enter yes or no.\n"

// Options wires an Explorer to its surroundings
type Options struct {
	Config config.Config
	Logger *zap.Logger

	// In and Out carry the interactive conversation
	In  io.Reader
	Out io.Writer

	// Progress receives load progress bars; nil disables them
	Progress io.Writer
}

// Explorer holds loaded city tables for the lifetime of a session
type Explorer struct {
	cfg      config.Config
	logger   *zap.Logger
	prompter *prompt.Prompter
	renderer *render.Renderer
	progress io.Writer

	mu     sync.Mutex
	tables map[string]*trip.Table
}

// New creates an explorer
func New(opts Options) *Explorer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	e := &Explorer{
		cfg:      opts.Config,
		logger:   logger,
		renderer: render.New(out),
		progress: opts.Progress,
		tables:   make(map[string]*trip.Table),
	}
	if opts.In != nil {
		e.prompter = prompt.New(opts.In, out, opts.Config.CityNames())
	}
	return e
}

// Renderer returns the renderer writing to the session's output
func (e *Explorer) Renderer() *render.Renderer {
	return e.renderer
}

// Table returns the full trip table for city, reading its file on first use
func (e *Explorer) Table(city string) (*trip.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.tables[city]; ok {
		e.logger.Debug("using cached city table", zap.String("city", city), zap.Int("trips", t.Len()))
		return t, nil
	}

	path, err := e.cfg.CityFile(city)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := trip.LoadFile(path, trip.LoadOptions{
		City:       city,
		TimeLayout: e.cfg.TimeLayout,
		Progress:   e.progress,
		Logger:     e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s data: %w", city, err)
	}
	e.logger.Info("loaded city table",
		zap.String("city", city),
		zap.String("file", path),
		zap.Int("trips", t.Len()),
		zap.Duration("elapsed", time.Since(start)))

	e.tables[city] = t
	return t, nil
}

// Run loads and filters the trips for f and computes its report.
// The filtered table is returned alongside for raw-row paging.
func (e *Explorer) Run(ctx context.Context, f trip.Filter) (*stats.Report, *trip.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context cancelled before analysis: %w", err)
	}

	all, err := e.Table(f.City)
	if err != nil {
		return nil, nil, err
	}

	filtered := all.Apply(f)
	e.logger.Debug("applied filter",
		zap.String("filter", f.String()),
		zap.Int("matched", filtered.Len()),
		zap.Int("total", all.Len()))

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context cancelled after loading: %w", err)
	}

	report, err := stats.Analyze(filtered, f)
	if err != nil {
		return nil, filtered, err
	}
	return report, filtered, nil
}

// Interactive runs the prompt loop until the user declines to restart or
// the input ends
func (e *Explorer) Interactive(ctx context.Context) error {
	if e.prompter == nil {
		return errors.New("explorer has no input to read from")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := e.session(ctx)
		if errors.Is(err, prompt.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		again, err := e.prompter.AskRestart()
		if errors.Is(err, prompt.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// session runs one pass of prompt, analysis and raw-row paging
func (e *Explorer) session(ctx context.Context) error {
	f, err := e.prompter.AskFilter()
	if err != nil {
		return err
	}

	report, filtered, err := e.Run(ctx, f)
	switch {
	case errors.Is(err, stats.ErrNoTrips):
		e.renderer.Notice(fmt.Sprintf("No trips match %s.", f))
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, os.ErrNotExist):
		e.logger.Warn("city data file missing", zap.String("city", f.City), zap.Error(err))
		e.renderer.Notice(fmt.Sprintf("%v\nRun `bikeshare fetch` to download the city files.", err))
		return nil
	case err != nil:
		e.logger.Warn("could not analyze selection", zap.String("filter", f.String()), zap.Error(err))
		e.renderer.Notice(err.Error())
		return nil
	}

	e.renderer.Report(report)
	return e.showRawData(filtered)
}

// showRawData pages through filtered rows while the user keeps saying yes
func (e *Explorer) showRawData(t *trip.Table) error {
	size := e.cfg.RawPageSize
	for offset := 0; offset < t.Len(); offset += size {
		more, err := e.prompter.AskYesNo(fmt.Sprintf(rawDataQuestion, size))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		e.renderer.Trips(t.Page(offset, size), offset)
	}
	if t.Len() > 0 {
		e.renderer.Trips(nil, t.Len())
	}
	return nil
}
