package commands

import (
	"log/slog"

	"github.com/NWNHT/advent-of-code-stats/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <daily|yearly>",
	Short: "Build a dataset from already-downloaded pages without persisting it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService()
		defer cleanup()

		switch args[0] {
		case "daily":
			table, err := svc.ParseDaily(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to parse daily pages", err)
			}
			slog.Info("parsed daily dataset", "rows", len(table))
		case "yearly":
			table, err := svc.ParseYearly(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to parse yearly pages", err)
			}
			slog.Info("parsed yearly dataset", "rows", len(table))
		default:
			badDataset(args[0])
		}
	},
}
