package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"ductnoise/internal/logging"
	"ductnoise/internal/report"
	"ductnoise/internal/service"

	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <network.yaml>...",
	Short: "Recalculate networks whenever their files change",
	Long: `Calculate each network once, then again every time its file is
saved. Runs until interrupted. Files with errors keep being watched and
are recalculated after the next save. Archived runs and failed
calculations are announced between the reports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	addOutputFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before recalculating (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bus := service.NewEventBus()
	events := make(chan service.Event, 64)
	bus.Subscribe(events)

	svc, closeStore, err := openService(ctx, bus)
	if err != nil {
		return err
	}
	defer closeStore()

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = cfg.Watch.Debounce.Duration()
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case e := <-events:
				mu.Lock()
				printEvent(out, e)
				mu.Unlock()
			case <-stop:
				for {
					select {
					case e := <-events:
						printEvent(out, e)
					default:
						return
					}
				}
			}
		}
	}()

	err = svc.Watch(ctx, args, debounce, func(rep *report.Report) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "--- %s\n", rep.CreatedAt.Local().Format(time.TimeOnly))
		if err := writeReport(out, rep); err != nil {
			logger.Error(ctx, "failed to print report", logging.Err(err))
		}
	})

	close(stop)
	wg.Wait()
	return err
}

// printEvent reports archive and failure events in the watch stream
func printEvent(w io.Writer, e service.Event) {
	p, _ := e.Payload.(map[string]string)
	switch e.Type {
	case service.EventReportSaved:
		fmt.Fprintf(w, "saved run %s\n", shortID(p["run_id"]))
	case service.EventCalculationFailed:
		fmt.Fprintf(w, "failed %s: %s\n", p["path"], p["error"])
	}
}
