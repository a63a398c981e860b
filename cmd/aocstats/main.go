package main

import (
	"context"

	"github.com/NWNHT/advent-of-code-stats/cmd/aocstats/commands"
	"github.com/NWNHT/advent-of-code-stats/lib/serviceutil"
	"github.com/NWNHT/advent-of-code-stats/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	err := telemetry.SetupFromEnv(ctx, "aocstats")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	commands.ExecuteContext(ctx)
	telemetry.Shutdown(context.Background())
}
