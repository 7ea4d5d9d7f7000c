package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Yates-Labs/bikeshare/internal/explorer"
	"github.com/Yates-Labs/bikeshare/internal/narrative"
	"github.com/Yates-Labs/bikeshare/internal/stats"
	"github.com/Yates-Labs/bikeshare/internal/trip"
)

var (
	statsCity    string
	statsMonth   string
	statsDay     string
	exportFile   string
	exportFormat string
	narrate      bool
)

// newLLM builds the model used by --narrate; tests replace it
var newLLM = func(config narrative.LLMConfig) (narrative.LLM, error) {
	llm, err := narrative.NewOpenAILLM(config)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print statistics for one city, month and day",
	Long: `Compute the statistics for a single selection without prompting.

The month is one of january to june or "all"; the day is a weekday name or
"all". With --export the report is written as JSON instead of printed.
With --narrate an LLM adds a short plain-language summary (requires
OPENAI_API_KEY).

Examples:
  bikeshare stats --city chicago
  bikeshare stats --city "new york city" --month march --day friday
  bikeshare stats --city washington --month june --export june.json
  bikeshare stats --city chicago --month may --narrate`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsCity, "city", "", "City to analyze")
	statsCmd.Flags().StringVar(&statsMonth, "month", "all", "Month filter: january..june or all")
	statsCmd.Flags().StringVar(&statsDay, "day", "all", "Day filter: monday..sunday or all")
	statsCmd.Flags().StringVar(&exportFile, "export", "", "Export the report to a file: --export <filename>")
	statsCmd.Flags().StringVar(&exportFormat, "format", string(stats.FormatJSON), "Export format")
	statsCmd.Flags().BoolVar(&narrate, "narrate", false, "Add an LLM-written summary of the statistics")
	_ = statsCmd.MarkFlagRequired("city")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	filter, err := parseFilter(statsCity, statsMonth, statsDay)
	if err != nil {
		return err
	}

	e := newExplorer(cmd)
	report, _, err := e.Run(ctx, filter)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if exportFile != "" {
		if err := handleExport(report, exportFile); err != nil {
			return err
		}
		e.Renderer().Success(fmt.Sprintf("Exported report %s (%d trips) to %s", report.ID, report.Trips, exportFile))
	} else {
		e.Renderer().Report(report)
	}

	if narrate {
		text, err := summarize(ctx, e, report)
		if err != nil {
			return err
		}
		e.Renderer().Narrative(text)
	}
	return nil
}

// parseFilter validates the flag values against the configured cities
func parseFilter(city, month, day string) (trip.Filter, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	if !cfg.HasCity(city) {
		_, err := cfg.CityFile(city)
		return trip.Filter{}, err
	}

	filter := trip.NewFilter(city)
	m, err := trip.ParseMonth(month)
	if err != nil {
		return trip.Filter{}, err
	}
	d, err := trip.ParseDay(day)
	if err != nil {
		return trip.Filter{}, err
	}
	filter.Month = m
	filter.Day = d
	return filter, nil
}

// handleExport checks the format before touching filename so a bad
// --format never truncates an existing file
func handleExport(report *stats.Report, filename string) (err error) {
	format, err := stats.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	if err := stats.ExportReport(report, string(format), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

// summarize asks the LLM for a narrative of report, comparing it against
// the whole city when the report covers only part of it
func summarize(ctx context.Context, e *explorer.Explorer, report *stats.Report) (string, error) {
	var baseline *stats.Report
	if !report.Filter.IsAll() {
		b, _, err := e.Run(ctx, trip.NewFilter(report.Filter.City))
		if err != nil {
			logger.Warn("no whole-city baseline for summary", zap.Error(err))
		} else {
			baseline = b
		}
	}

	llmConfig := narrative.LLMConfig{
		Model:       cfg.Narrative.Model,
		Temperature: cfg.Narrative.Temperature,
		MaxTokens:   cfg.Narrative.MaxTokens,
		APIKey:      cfg.OpenAIAPIKey,
	}
	llm, err := newLLM(llmConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create LLM: %w", err)
	}

	logger.Debug("requesting summary", zap.String("report", report.ID), zap.String("model", llmConfig.Model))
	n, err := narrative.NewGenerator(llm, llmConfig).Summarize(ctx, report, baseline)
	if err != nil {
		return "", err
	}
	return n.Text, nil
}
