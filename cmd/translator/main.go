package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/pingu-dev/gmod-translator/internal/app"
	"github.com/pingu-dev/gmod-translator/internal/entity"
)

const durationRound = 100 * time.Millisecond

func main() {
	cfgFileName := flag.String("c", "config.yml", "Path to config file")
	workers := flag.Int("workers", 0, "Worker count override (0 uses the config value)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := app.New(*cfgFileName, app.WithWorkers(*workers)).Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "translator: %s\n", err)
		os.Exit(1)
	}

	fmt.Println(renderSummary(summary))

	if summary.Failed > 0 {
		os.Exit(2)
	}
}

func renderSummary(summary *entity.RunSummary) string {
	outcomes := append([]*entity.Outcome(nil), summary.Outcomes...)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Addon.ID < outcomes[j].Addon.ID })

	var rows [][]string
	for _, o := range outcomes {
		if o.Status != entity.StatusSucceeded {
			rows = append(rows, []string{o.Addon.ID, o.Status.String(), o.Reason})
		}
	}

	out := fmt.Sprintf("Run %s: %d addons, %d succeeded, %d skipped, %d failed (%s)",
		summary.RunID, summary.Total, summary.Succeeded, summary.Skipped, summary.Failed,
		summary.Duration().Round(durationRound))

	if len(rows) > 0 {
		out += "\n" + renderTable([]string{"addon", "status", "reason"}, rows)
	}

	return out
}
