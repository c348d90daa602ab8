// Command hwmon-mcp serves the hardware generator as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hwmonitor/internal/config"
	"hwmonitor/internal/database"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/logger"
	"hwmonitor/internal/mcpserver"
	"hwmonitor/internal/simulator"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hwmon-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries the protocol; logs go to stderr or the configured file.
	log, closeLog, err := logger.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []simulator.Option{
		simulator.WithAmbientTemperature(cfg.AmbientTemperature),
		simulator.WithUpdateInterval(cfg.UpdateInterval),
	}
	if cfg.Seed != 0 {
		opts = append(opts, simulator.WithSeed(cfg.Seed))
	}
	sim := simulator.New(opts...)

	repo, err := database.OpenRecorder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}
	defer repo.Close()

	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), repo,
		database.WithInterval(sim.UpdateInterval),
		database.WithRetention(cfg.Retention),
		database.WithLogger(log.With("component", "worker")),
	)
	if err != nil {
		return err
	}
	if err := worker.Start(ctx); err != nil {
		return err
	}
	defer worker.Stop()

	srv, err := mcpserver.NewServer(mcpserver.Config{
		ServerName:    "hwmonitor",
		ServerVersion: version,
	}, sim, worker, repo, log.With("component", "mcp"))
	if err != nil {
		return err
	}

	log.Info("generator ready", "simulator", sim.ID(), "retention", cfg.Retention)
	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
