package commands

import (
	"log/slog"

	"github.com/NWNHT/advent-of-code-stats/lib/serviceutil"
	"github.com/NWNHT/advent-of-code-stats/lib/telemetry"
	"github.com/NWNHT/advent-of-code-stats/services/aocstats"

	"github.com/spf13/cobra"
)

var makeYears yearFlags
var makeDownload *bool

func init() {
	makeYears = addYearFlags(makeCmd)
	makeDownload = makeCmd.Flags().Bool("download", true, "Fetch pages before parsing, disable to re-parse what is already stored.")
	rootCmd.AddCommand(makeCmd)
}

var makeCmd = &cobra.Command{
	Use:   "make <daily|yearly>",
	Short: "Fetch, parse and persist a dataset.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService()
		defer cleanup()

		if *makeDownload {
			telemetry.InstrumentPerfStats(cmd.Context())
		}

		first, last := makeYears.resolve()
		opts := aocstats.MakeOptions{
			Download:  *makeDownload,
			FirstYear: first,
			LastYear:  last,
		}

		switch args[0] {
		case "daily":
			table, err := svc.MakeDaily(cmd.Context(), opts)
			if err != nil {
				serviceutil.Fatal("failed to make daily dataset", err)
			}
			slog.Info("daily dataset persisted", "rows", len(table))
		case "yearly":
			table, err := svc.MakeYearly(cmd.Context(), opts)
			if err != nil {
				serviceutil.Fatal("failed to make yearly dataset", err)
			}
			slog.Info("yearly dataset persisted", "rows", len(table))
		default:
			badDataset(args[0])
		}
	},
}
