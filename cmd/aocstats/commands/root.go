package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/configutil"
	"github.com/NWNHT/advent-of-code-stats/lib/pagestore"
	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"
	"github.com/NWNHT/advent-of-code-stats/lib/serviceutil"
	"github.com/NWNHT/advent-of-code-stats/lib/telemetry"
	"github.com/NWNHT/advent-of-code-stats/services/aocstats"

	"github.com/spf13/cobra"
)

var (
	pagesDir *string
	dbPath   *string
	verbose  *bool
)

var rootCmd = &cobra.Command{
	Use:   "aocstats",
	Short: "aocstats scrapes public Advent of Code leaderboard statistics into tabular datasets.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	pagesDir = rootCmd.PersistentFlags().String("pages", "pages", "The directory raw pages are stored in.")
	dbPath = rootCmd.PersistentFlags().String("db", "aocstats.db", "The database datasets are written to.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config tunes the scrape client, mainly useful to point it at a mirror
// or to slow it down further. Absent config falls back to the defaults.
type Config struct {
	BaseUrl string `json:"base_url"`
	DelayMs int    `json:"delay_ms"`
}

func openService() (aocstats.Service, func()) {
	pages, err := pagestore.Open(*pagesDir)
	if err != nil {
		serviceutil.Fatal("failed to open page store", err)
	}
	database, err := aocstats.OpenDB(*dbPath)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	client := adventofcode.NewClient(adventofcode.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Delay:   time.Duration(cfg.DelayMs) * time.Millisecond,
	})
	svc := aocstats.NewService(client, pages, aocstats.NewStore(database))
	return svc, func() { database.Close() }
}

type yearFlags struct {
	first *int
	last  *int
}

func addYearFlags(cmd *cobra.Command) yearFlags {
	return yearFlags{
		first: cmd.Flags().Int("first-year", adventofcode.FirstEventYear, "The minimum year to cover."),
		last:  cmd.Flags().Int("last-year", 0, "The maximum year to cover, defaults to the current year."),
	}
}

// the current year is resolved once here, not recomputed mid-run
func (f yearFlags) resolve() (int, int) {
	last := *f.last
	if last == 0 {
		last = time.Now().Year()
	}
	return *f.first, last
}

func badDataset(name string) {
	serviceutil.Fatal("unknown dataset", fmt.Errorf("expected daily or yearly, got %q", name))
}
