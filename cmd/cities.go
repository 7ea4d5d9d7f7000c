package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/bikeshare/internal/dataset"
	"github.com/Yates-Labs/bikeshare/internal/prompt"
	"github.com/Yates-Labs/bikeshare/internal/render"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List configured cities and whether their data files are present",
	Args:  cobra.NoArgs,
	RunE:  runCities,
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}

func runCities(cmd *cobra.Command, args []string) error {
	statuses := dataset.Status(cfg)

	missing := 0
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		status, size := "ok", humanize.Bytes(uint64(st.Size))
		if !st.Exists {
			status, size = "missing", "-"
			missing++
		}
		rows = append(rows, []string{prompt.Title(st.City), st.Path, status, size})
	}

	out := render.New(cmd.OutOrStdout())
	out.Table([]string{"CITY", "FILE", "STATUS", "SIZE"}, rows)
	if missing > 0 {
		out.Notice("Run `bikeshare fetch` to download missing city files.")
	}
	return nil
}
