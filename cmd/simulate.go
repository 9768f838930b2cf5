package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smazurov/blinkd/internal/battery"
	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/indicator"
	"github.com/smazurov/blinkd/internal/led"
	"github.com/smazurov/blinkd/internal/logging"
	"github.com/smazurov/blinkd/internal/sim"
)

// CreateSimulateCmd creates the simulate command.
func CreateSimulateCmd() *cobra.Command {
	var scriptFile string
	var peripheral bool
	var batteryLevel uint8
	var logLevel string
	var dumpLogs bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the indicator pipeline against a scripted event timeline",
		Long: `Renders indications to the terminal instead of hardware. Events come from a TOML ` +
			`script; editing the script mid-run restarts the timeline from the top.`,
		Run: func(_ *cobra.Command, _ []string) {
			// The color swatch owns the terminal line, so logs go to the
			// ring buffer instead of stdout.
			logging.Initialize(logging.Config{
				Level:         logLevel,
				Format:        "text",
				DisableStdout: true,
			})
			logger := logging.GetLogger("sim")

			cfg := indicator.DefaultConfig()
			cfg.Peripheral = peripheral

			bus := events.New()
			out := led.NewConsole(os.Stdout)
			queue := indicator.NewQueue(cfg.QueueCapacity)
			catalog := indicator.NewCatalog(cfg)
			renderer := indicator.NewRenderer(queue, out, cfg, logging.GetLogger("renderer"))
			mapper := indicator.NewMapper(catalog, queue, bus, cfg, logging.GetLogger("mapper"))
			boot := indicator.NewBoot(cfg, catalog, mapper, renderer, battery.NewFake(batteryLevel),
				logging.GetLogger("boot"))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			mapper.Start()
			defer mapper.Stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return renderer.Run(gctx)
			})
			g.Go(func() error {
				boot.Run(gctx)
				runner := sim.NewRunner(scriptFile, sim.NewPlayer(bus, logger), logger)
				return runner.Run(gctx)
			})

			err := g.Wait()
			fmt.Println() // move past the swatch line

			if dumpLogs {
				for _, entry := range logging.GetBuffer().ReadAll() {
					fmt.Println(logging.FormatLogLine(entry))
				}
			}

			if err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "simulate:", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&scriptFile, "script", "events.toml", "Path to the event timeline script")
	cmd.Flags().BoolVar(&peripheral, "peripheral", false, "Simulate the peripheral half of a split device")
	cmd.Flags().Uint8Var(&batteryLevel, "battery", 85, "Initial battery percentage reported at boot")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&dumpLogs, "dump-logs", false, "Print buffered logs on exit")

	return cmd
}
