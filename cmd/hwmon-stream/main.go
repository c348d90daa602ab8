// Command hwmon-stream publishes generator polls to websocket subscribers.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hwmonitor/internal/config"
	"hwmonitor/internal/control"
	"hwmonitor/internal/database"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/logger"
	"hwmonitor/internal/simulator"
	"hwmonitor/internal/stream"
)

const shutdownTimeout = 5 * time.Second

func main() {
	readOnly := flag.Bool("read-only", false, "reject control commands from subscribers")
	flag.Parse()

	if err := run(*readOnly); err != nil {
		fmt.Fprintf(os.Stderr, "hwmon-stream: %v\n", err)
		os.Exit(1)
	}
}

func run(readOnly bool) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

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

	hub := stream.NewHub(log.With("component", "hub"))
	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), repo,
		database.WithInterval(sim.UpdateInterval),
		database.WithRetention(cfg.Retention),
		database.WithSinks(hub),
		database.WithLogger(log.With("component", "worker")),
	)
	if err != nil {
		return err
	}

	var ctl *control.Controller
	if !readOnly {
		ctl = control.New(sim, worker)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", stream.NewHandler(hub, ctl, log.With("component", "ws"), nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"simulator":   sim.ID(),
			"load_mode":   sim.LoadMode(),
			"paused":      worker.Paused(),
			"subscribers": hub.Clients(),
		})
	})
	mux.HandleFunc("/snapshots", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		rows, err := repo.QuerySnapshots(r.Context(), limit)
		if err != nil {
			log.Error("query snapshots", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := repo.Aggregate(r.Context())
		if err != nil {
			log.Error("aggregate snapshots", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	srv := &http.Server{
		Addr:              cfg.StreamAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		if err := worker.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		worker.Stop()
		return nil
	})
	g.Go(func() error {
		log.Info("stream listening", "addr", cfg.StreamAddress, "read_only", readOnly)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("stream stopped")
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
