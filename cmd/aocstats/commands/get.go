package commands

import (
	"os"

	"github.com/NWNHT/advent-of-code-stats/lib/serviceutil"
	"github.com/NWNHT/advent-of-code-stats/services/aocstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

func newWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var getCmd = &cobra.Command{
	Use:   "get <daily|yearly>",
	Short: "Print a previously built dataset without fetching or parsing.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService()
		defer cleanup()

		switch args[0] {
		case "daily":
			rows, err := svc.GetDaily(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to load daily dataset", err)
			}
			t := newWriter()
			t.AppendHeader(table.Row{"year", "day", "completion", "position", "time"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.Year, r.Day, r.Completion, r.Position, aocstats.FormatClock(r.Time)})
			}
			t.Render()
		case "yearly":
			rows, err := svc.GetYearly(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to load yearly dataset", err)
			}
			t := newWriter()
			t.AppendHeader(table.Row{"year", "day", "completion", "count"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.Year, r.Day, r.Completion, r.Count})
			}
			t.Render()
		default:
			badDataset(args[0])
		}
	},
}
