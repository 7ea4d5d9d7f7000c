package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/bikeshare/internal/dataset"
	"github.com/Yates-Labs/bikeshare/internal/prompt"
	"github.com/Yates-Labs/bikeshare/internal/render"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [source]",
	Short: "Download the city CSV files into the data directory",
	Long: `Download every configured city file from a dataset source.

The source may be a GitHub repository (URL or owner/repo[@ref][:dir]),
any other git remote, or a local directory. Without an argument the
dataset_source setting or BIKESHARE_DATASET_SOURCE is used. GITHUB_TOKEN
raises the GitHub rate limit when set.

Examples:
  bikeshare fetch udacity/bikeshare-data@main:data
  bikeshare fetch https://github.com/udacity/bikeshare-data/tree/main/data
  bikeshare fetch https://gitlab.com/rides/bikeshare.git
  bikeshare fetch /mnt/shared/bikeshare --data-dir ./data`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	raw := cfg.DatasetSource
	if len(args) > 0 {
		raw = args[0]
	}
	src, err := dataset.ParseSource(raw)
	if err != nil {
		return fmt.Errorf("%w (pass a source or set dataset_source)", err)
	}

	f, err := dataset.NewFetcher(ctx, src, cfg.GitHubToken, logger)
	if err != nil {
		return err
	}
	defer f.Close()

	results, fetchErr := dataset.FetchCities(ctx, f, cfg, logger)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		size := humanize.Bytes(uint64(r.Bytes))
		if r.Err != nil {
			status = "failed"
			size = "-"
		}
		rows = append(rows, []string{prompt.Title(r.City), r.File, status, size})
	}

	out := render.New(cmd.OutOrStdout())
	if len(rows) > 0 {
		out.Table([]string{"CITY", "FILE", "STATUS", "SIZE"}, rows)
	}
	if fetchErr != nil {
		return fmt.Errorf("fetch from %s incomplete: %w", src, fetchErr)
	}
	out.Success(fmt.Sprintf("Fetched %d city files from %s", len(results), src))
	return nil
}
