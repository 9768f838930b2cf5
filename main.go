package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"
	"golang.org/x/sync/errgroup"

	"github.com/smazurov/blinkd/cmd"
	"github.com/smazurov/blinkd/internal/battery"
	"github.com/smazurov/blinkd/internal/config"
	"github.com/smazurov/blinkd/internal/events"
	"github.com/smazurov/blinkd/internal/indicator"
	"github.com/smazurov/blinkd/internal/led"
	"github.com/smazurov/blinkd/internal/logging"
	"github.com/smazurov/blinkd/internal/metrics"
	"github.com/smazurov/blinkd/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Output settings
	Output       string `help:"LED output backend (auto, noop, console, sysfs, serial, gpio)" default:"auto" toml:"output.kind" env:"OUTPUT_KIND"`
	SerialDevice string `help:"Serial device for the serial backend" default:"/dev/ttyACM0" toml:"output.serial_device" env:"OUTPUT_SERIAL_DEVICE"`
	SerialBaud   int    `help:"Serial baud rate" default:"115200" toml:"output.serial_baud" env:"OUTPUT_SERIAL_BAUD"`
	RedPin       string `help:"GPIO pin for the red channel" default:"GPIO17" toml:"output.red_pin" env:"OUTPUT_RED_PIN"`
	GreenPin     string `help:"GPIO pin for the green channel" default:"GPIO27" toml:"output.green_pin" env:"OUTPUT_GREEN_PIN"`
	BluePin      string `help:"GPIO pin for the blue channel" default:"GPIO22" toml:"output.blue_pin" env:"OUTPUT_BLUE_PIN"`

	// Role settings
	Peripheral bool `help:"Run as the peripheral half of a split device" toml:"role.peripheral" env:"PERIPHERAL"`

	// Battery settings
	BatterySupply      string `help:"Power supply name under /sys/class/power_supply (empty autodetects)" toml:"battery.supply" env:"BATTERY_SUPPLY"`
	BatteryPollSeconds int    `help:"Battery poll interval in seconds" default:"60" toml:"battery.poll_seconds" env:"BATTERY_POLL_SECONDS"`
	BatteryHighPercent int    `help:"High battery threshold percentage" default:"80" toml:"battery.high" env:"BATTERY_HIGH"`
	BatteryLowPercent  int    `help:"Low battery threshold percentage" default:"20" toml:"battery.low" env:"BATTERY_LOW"`
	BatteryCriticalPct int    `help:"Critical battery threshold percentage" default:"5" toml:"battery.critical" env:"BATTERY_CRITICAL"`

	// Indicator settings
	QueueCapacity  int  `help:"Blink queue capacity" default:"6" toml:"indicator.queue_capacity" env:"QUEUE_CAPACITY"`
	IntervalMs     int  `help:"Pause between blink sequences in milliseconds" default:"500" toml:"indicator.interval_ms" env:"INTERVAL_MS"`
	ShowBattery    bool `help:"Indicate battery tier on boot" default:"true" toml:"indicator.show_battery" env:"SHOW_BATTERY"`
	ShowChanges    bool `help:"Indicate critical battery drops while running" default:"true" toml:"indicator.show_changes" env:"SHOW_CHANGES"`
	ShowProfile    bool `help:"Indicate wireless profile changes" default:"true" toml:"indicator.show_profile" env:"SHOW_PROFILE"`
	ShowPeriphLink bool `help:"Indicate peripheral link changes" default:"true" toml:"indicator.show_peripheral" env:"SHOW_PERIPHERAL"`
	ShowLayer      bool `help:"Show the active layer color" default:"true" toml:"indicator.show_layer" env:"SHOW_LAYER"`

	// Metrics settings
	MetricsAddr string `help:"Prometheus listen address (e.g. :9105), empty disables" toml:"metrics.addr" env:"METRICS_ADDR"`

	// Logging settings
	LoggingLevel    string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat   string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingRenderer string `help:"Renderer logging level" default:"info" toml:"logging.renderer" env:"LOGGING_RENDERER"`
	LoggingMapper   string `help:"Mapper logging level" default:"info" toml:"logging.mapper" env:"LOGGING_MAPPER"`
	LoggingBattery  string `help:"Battery logging level" default:"info" toml:"logging.battery" env:"LOGGING_BATTERY"`
	LoggingLED      string `help:"LED output logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
}

func buildConfig(opts *Options) indicator.Config {
	cfg := indicator.DefaultConfig()
	cfg.QueueCapacity = opts.QueueCapacity
	cfg.Interval = time.Duration(opts.IntervalMs) * time.Millisecond
	cfg.BatteryHigh = uint8(opts.BatteryHighPercent)
	cfg.BatteryLow = uint8(opts.BatteryLowPercent)
	cfg.BatteryCritical = uint8(opts.BatteryCriticalPct)
	cfg.Peripheral = opts.Peripheral
	cfg.ShowBatteryOnBoot = opts.ShowBattery
	cfg.ShowBatteryChanges = opts.ShowChanges
	cfg.ShowProfile = opts.ShowProfile
	cfg.ShowPeripheral = opts.ShowPeriphLink
	cfg.ShowLayer = opts.ShowLayer
	return cfg
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			logging.GetLogger("main").Warn("Failed to load config", "error", loadErr)
		}

		// File-sourced module levels survive for modules without a flag;
		// flag-backed ones already reflect the file through LoadConfig.
		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		loggingConfig.Modules["renderer"] = opts.LoggingRenderer
		loggingConfig.Modules["mapper"] = opts.LoggingMapper
		loggingConfig.Modules["battery"] = opts.LoggingBattery
		loggingConfig.Modules["led"] = opts.LoggingLED
		logging.Initialize(loggingConfig)
		logger := logging.GetLogger("main")

		cfg := buildConfig(opts)

		out, err := led.New(led.Options{
			Kind:         opts.Output,
			SerialDevice: opts.SerialDevice,
			SerialBaud:   opts.SerialBaud,
			RedPin:       opts.RedPin,
			GreenPin:     opts.GreenPin,
			BluePin:      opts.BluePin,
		}, logging.GetLogger("led"))
		if err != nil {
			logger.Error("Failed to create LED output", "error", err)
			os.Exit(1)
		}

		bus := events.New()
		stats := metrics.New()

		queue := indicator.NewQueue(cfg.QueueCapacity)
		catalog := indicator.NewCatalog(cfg)
		renderer := indicator.NewRenderer(queue, out, cfg, logging.GetLogger("renderer"))
		renderer.SetMetrics(stats)
		mapper := indicator.NewMapper(catalog, queue, bus, cfg, logging.GetLogger("mapper"))
		mapper.SetMetrics(stats)

		var sensor battery.Sensor
		sysfsSensor, sensorErr := battery.NewSysfs(opts.BatterySupply)
		if sensorErr != nil {
			logger.Warn("Battery sensor unavailable, readings disabled", "error", sensorErr)
			sensor = battery.NewFake(0)
		} else {
			sensor = sysfsSensor
		}

		pollInterval := time.Duration(opts.BatteryPollSeconds) * time.Second
		monitor := battery.NewMonitor(sensor, bus, pollInterval, logging.GetLogger("battery"))
		boot := indicator.NewBoot(cfg, catalog, mapper, renderer, sensor, logging.GetLogger("boot"))

		ctx, cancel := context.WithCancel(context.Background())
		var metricsServer *http.Server

		hooks.OnStart(func() {
			logger.Info("Starting blinkd",
				"version", version.String(),
				"output", opts.Output,
				"peripheral", opts.Peripheral)

			mapper.Start()

			if opts.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", stats.Handler())
				metricsServer = &http.Server{Addr: opts.MetricsAddr, Handler: mux}
				go func() {
					logger.Info("Metrics listener started", "addr", opts.MetricsAddr)
					if serveErr := metricsServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
						logger.Error("Metrics listener failed", "error", serveErr)
					}
				}()
			}

			// Readiness is reported before the boot indication finishes;
			// the indication is cosmetic, the pipeline is already live.
			if _, notifyErr := daemon.SdNotify(false, daemon.SdNotifyReady); notifyErr != nil {
				logger.Debug("sd_notify not available", "error", notifyErr)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return renderer.Run(gctx)
			})
			g.Go(func() error {
				return monitor.Run(gctx)
			})
			g.Go(func() error {
				boot.Run(gctx)
				return nil
			})

			if waitErr := g.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
				logger.Error("Indicator pipeline failed", "error", waitErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

			if metricsServer != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer shutdownCancel()
				if stopErr := metricsServer.Shutdown(shutdownCtx); stopErr != nil {
					logger.Warn("Error stopping metrics listener", "error", stopErr)
				}
			}

			mapper.Stop()
			cancel()

			if closeErr := out.Close(); closeErr != nil {
				logger.Warn("Error closing LED output", "error", closeErr)
			}
		})
	})

	root := cli.Root()
	root.Use = "blinkd"
	root.Version = version.String()
	root.AddCommand(cmd.CreateSimulateCmd())
	root.AddCommand(cmd.CreatePatternsCmd())
	root.AddCommand(cmd.CreateUpdateCmd())

	cli.Run()
}
