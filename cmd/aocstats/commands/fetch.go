package commands

import (
	"github.com/NWNHT/advent-of-code-stats/lib/telemetry"

	"github.com/spf13/cobra"
)

var fetchYears yearFlags

func init() {
	fetchYears = addYearFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <daily|yearly>",
	Short: "Download raw leaderboard pages into the page store without parsing.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService()
		defer cleanup()

		// a full fetch run takes minutes because of the per-request pause
		telemetry.InstrumentPerfStats(cmd.Context())

		first, last := fetchYears.resolve()
		switch args[0] {
		case "daily":
			svc.FetchDaily(cmd.Context(), first, last)
		case "yearly":
			svc.FetchYearly(cmd.Context(), first, last)
		default:
			badDataset(args[0])
		}
	},
}
