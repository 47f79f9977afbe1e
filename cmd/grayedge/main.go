// Gray Logic Edge - Peripheral Agent
//
// This is the main entry point for the Gray Logic Edge agent: a small
// firmware-style process that owns a fixed set of local peripherals
// (binary actuators and temperature sensors), validates them, arms
// threshold alerting where the hardware supports it, and runs a
// perpetual monitor loop reporting readings and toggle states.
//
// The peripheral set comes from a static hardware manifest and never
// changes for the lifetime of the process.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/gray-logic-edge/internal/api"
	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-edge/internal/manifest"
	"github.com/nerrad567/gray-logic-edge/internal/monitor"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Exit semantics follow the agent's startup contract: a readiness
// validation failure logs and returns nil (the loop never starts, clean
// exit), while a manifest conversion failure or an unreadable baseline
// returns an error and exits non-zero.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic Edge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded",
		"path", configPath,
		"agent_id", cfg.Agent.ID,
	)

	// Load the hardware manifest and build the registry
	actuators, sensors, err := manifest.Load(cfg.Manifest.Path)
	if err != nil {
		return fmt.Errorf("loading hardware manifest: %w", err)
	}
	registry := device.NewRegistry(actuators, sensors)
	log.Info("peripherals registered",
		"actuators", len(registry.Actuators()),
		"sensors", len(registry.Sensors()),
	)
	for _, s := range registry.Thermometers() {
		log.Info("thermometer classified", "sensor", s.Name)
	}

	// Validate readiness. Failure here means no partial operation is
	// safe; the monitor loop never starts.
	if err := registry.Validate(); err != nil {
		log.Error("peripheral validation failed, not starting", "error", err)
		return nil
	}
	log.Info("all peripherals ready")

	// Drive every actuator to a known initial state (on).
	for _, a := range registry.Actuators() {
		if err := a.Configure(true); err != nil {
			log.Error("actuator configuration failed, not starting",
				"actuator", a.Name,
				"error", err,
			)
			return nil
		}
	}

	// Connect to the Gray Logic bus (optional)
	var busClient *mqtt.Client
	if cfg.MQTT.Enabled {
		busClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := busClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", busClient.ClientID(),
		)
	} else {
		log.Info("MQTT disabled")
	}

	// Assemble the reporting fan-out: structured logs always, the bus
	// when enabled, and the status store for the API.
	store := telemetry.NewStore(registry)
	sinks := []telemetry.Reporter{telemetry.NewLogReporter(log), store}
	if busClient != nil {
		sinks = append(sinks, telemetry.NewMQTTReporter(busClient, log))
	}
	reporter := telemetry.NewMulti(sinks...)

	// Calibrate every sensor: baseline sample, derive and install alert
	// bounds, arm triggers where supported. An unreadable baseline is a
	// startup failure.
	alerts := monitor.NewAlertQueue(len(registry.Sensors()))
	calibrator := monitor.NewCalibrator(alerts, reporter, cfg.IOTimeout(), log.With("component", "calibration"))
	for _, s := range registry.Sensors() {
		if _, err := calibrator.Calibrate(ctx, s); err != nil {
			return fmt.Errorf("calibrating sensors: %w", err)
		}
	}

	loop, err := monitor.New(monitor.Deps{
		Registry:   registry,
		Alerts:     alerts,
		Dispatcher: monitor.NewDispatcher(reporter, cfg.IOTimeout()),
		Reporter:   reporter,
		Interval:   cfg.Interval(),
		IOTimeout:  cfg.IOTimeout(),
		Logger:     log.With("component", "monitor"),
	})
	if err != nil {
		return fmt.Errorf("creating monitor loop: %w", err)
	}

	// Run the loop and the status API together; either failing or the
	// shutdown signal stops both.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(gctx)
	})

	if cfg.API.Enabled {
		server, err := api.New(api.Deps{
			Config:  cfg.API,
			Logger:  log,
			Store:   store,
			Bus:     busHealth(busClient),
			Version: version,
		})
		if err != nil {
			return fmt.Errorf("creating status API: %w", err)
		}
		g.Go(func() error {
			return server.Run(gctx)
		})
	} else {
		log.Info("status API disabled")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("Gray Logic Edge stopped")
	return nil
}

// busHealth avoids handing the API a typed-nil interface when MQTT is
// disabled.
func busHealth(c *mqtt.Client) api.BusHealth {
	if c == nil {
		return nil
	}
	return c
}

// getConfigPath returns the configuration file path.
// Uses GRAYEDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYEDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
