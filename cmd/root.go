package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Yates-Labs/bikeshare/internal/config"
	"github.com/Yates-Labs/bikeshare/internal/explorer"
	"github.com/Yates-Labs/bikeshare/internal/logging"
)

var (
	cfgFile string
	dataDir string
	debug   bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bikeshare",
	Short: "Bikeshare - US bikeshare trip statistics",
	Long: `Bikeshare loads trip records for Chicago, New York City or Washington
and prints descriptive statistics about them.

Run without a subcommand to pick a city, month and day interactively.
The statistics cover popular travel times, popular stations and trips,
trip durations, and rider demographics.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runExplore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the city CSV files")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup resolves configuration and the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	cfg = loaded

	l, _, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Debug:  debug,
	})
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.Strings("cities", cfg.CityNames()))
	return nil
}

// newExplorer wires an explorer to the command's streams
func newExplorer(cmd *cobra.Command) *explorer.Explorer {
	return explorer.New(explorer.Options{
		Config:   cfg,
		Logger:   logger,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Progress: progressWriter(),
	})
}

// progressWriter returns stderr when it is a terminal, otherwise nil so
// piped or captured output never contains progress bars
func progressWriter() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
