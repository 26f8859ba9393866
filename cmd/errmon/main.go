// errmon polls the SMpro/PMpro RAS error and event reports of an Ampere
// Altra host while it is powered on, logs each record to the IPMI SEL,
// and raises the matching Redfish alerts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/config"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/faultflag"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/hoststate"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/hwmon"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/metric"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/poller"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/ras"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/redfish"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/sel"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("errmon", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log.Level)

	slog.Info("errmon starting",
		"version", version,
		"sockets", len(cfg.Errmon.SocketRoots),
		"interval", cfg.Errmon.PollInterval.Duration,
	)

	if err := run(cfg); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	tree, err := hwmon.Discover(cfg.Errmon.SocketRoots)
	if err != nil {
		return fmt.Errorf("discovering report roots: %w", err)
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connecting to system bus: %w", err)
	}
	defer conn.Close()

	reg, err := ras.NewRegistry()
	if err != nil {
		return fmt.Errorf("building source registry: %w", err)
	}

	fault := faultflag.New(cfg.Errmon.FaultMarker)
	mon := ras.NewMonitor(reg, ras.MonitorConfig{
		Tree:  tree,
		SEL:   sel.NewLogger(conn),
		Alert: redfish.NewNotifier(),
		Fault: fault,
	})

	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		metric.Handle(mux)
		go func() {
			slog.Info("metrics endpoint listening", "addr", cfg.Metrics.Listen)
			if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
				slog.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	states, err := hoststate.Watch(ctx, conn)
	if err != nil {
		return fmt.Errorf("watching host state: %w", err)
	}

	// The watcher only reports transitions; seed the current state so a
	// daemon restart on a running host starts polling right away.
	seeded := make(chan bool, 1)
	go func() {
		defer close(seeded)
		if running, err := hoststate.Current(conn); err != nil {
			slog.Warn("host state unavailable, waiting for first transition", "error", err)
		} else {
			seeded <- running
		}
		for running := range states {
			seeded <- running
		}
	}()

	p := poller.New(mon, fault, cfg.Errmon.PollInterval.Duration)
	p.Run(ctx, seeded)
	return nil
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
