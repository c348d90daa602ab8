package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"hwmonitor/internal/config"
	"hwmonitor/internal/control"
	"hwmonitor/internal/database"
	"hwmonitor/internal/database/relational"
	"hwmonitor/internal/engine"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/logger"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
	"hwmonitor/ui/console"
	"hwmonitor/ui/tui"
)

func main() {
	report := flag.Bool("report", false, "print one console report and exit")
	record := flag.Bool("record", true, "keep a rolling snapshot log in DuckDB")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *report {
		if err := printReport(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal, so logs only go somewhere when a file is set.
	log := logger.Nop()
	if cfg.LogFile != "" {
		l, closeLog, err := logger.FromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()
		log = l
	}

	sim := newSimulator(cfg)

	var repo relational.SnapshotRepository
	if *record {
		r, err := database.OpenRecorder(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening recorder: %v\n", err)
			os.Exit(1)
		}
		defer r.Close()
		repo = r
	}

	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), repo,
		database.WithInterval(sim.UpdateInterval),
		database.WithRetention(cfg.Retention),
		database.WithLogger(log.With("component", "worker")),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("starting dashboard", "simulator", sim.ID(), "interval", sim.UpdateInterval())
	if err := tui.Start(tui.Deps{
		Source:     worker,
		Settings:   sim,
		Controller: control.New(sim, worker),
		Checks:     engine.DefaultConfig(),
	}); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func newSimulator(cfg config.Config) *simulator.Simulator {
	opts := []simulator.Option{
		simulator.WithAmbientTemperature(cfg.AmbientTemperature),
		simulator.WithUpdateInterval(cfg.UpdateInterval),
	}
	if cfg.Seed != 0 {
		opts = append(opts, simulator.WithSeed(cfg.Seed))
	}
	return simulator.New(opts...)
}

func printReport(cfg config.Config) error {
	sim := newSimulator(cfg)
	checks := engine.DefaultConfig()
	payload, err := output.RunPipeline(context.Background(), sim, flagger.NewFlaggerService(flagger.DefaultConfig()), checks)
	if err != nil {
		return err
	}
	console.Print(os.Stdout, output.BuildDashboard(payload.Checks, payload.Snapshot, checks))
	return nil
}
