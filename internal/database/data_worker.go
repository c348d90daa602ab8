// Package database drives the poll loop that feeds the snapshot log and any
// live subscribers.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hwmonitor/internal/database/relational"
	"hwmonitor/internal/engine"
	"hwmonitor/internal/logger"
	"hwmonitor/internal/output"
)

const defaultPollInterval = 2 * time.Second

// PayloadSink receives every payload after it has been recorded.
type PayloadSink interface {
	Publish(p *output.PipelinePayload)
}

// IntervalFunc reports the current poll interval. It is consulted on every
// tick so interval changes take effect without a restart.
type IntervalFunc func() time.Duration

// DataWorker orchestrates the data pipeline: Generator -> Checks -> Flagger -> Repo -> Sinks.
type DataWorker struct {
	collector output.DataCollector
	flagger   output.DataFlagger
	repo      relational.SnapshotRepository
	checks    engine.Config
	sinks     []PayloadSink
	interval  IntervalFunc
	retention int
	log       logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	paused  bool
	last    *output.PipelinePayload
	wg      sync.WaitGroup
}

// WorkerOption configures a DataWorker.
type WorkerOption func(*DataWorker)

// WithInterval sets the poll interval source.
func WithInterval(fn IntervalFunc) WorkerOption {
	return func(w *DataWorker) {
		if fn != nil {
			w.interval = fn
		}
	}
}

// WithRetention caps the number of stored snapshots. Zero keeps everything.
func WithRetention(n int) WorkerOption {
	return func(w *DataWorker) { w.retention = n }
}

// WithSinks registers live subscribers.
func WithSinks(sinks ...PayloadSink) WorkerOption {
	return func(w *DataWorker) { w.sinks = append(w.sinks, sinks...) }
}

// WithLogger sets the worker logger.
func WithLogger(l logger.Logger) WorkerOption {
	return func(w *DataWorker) {
		if l != nil {
			w.log = l
		}
	}
}

// WithChecks overrides the check thresholds.
func WithChecks(cfg engine.Config) WorkerOption {
	return func(w *DataWorker) { w.checks = cfg }
}

// NewDataWorker creates a new worker instance. repo may be nil, in which case
// payloads only go to the sinks.
func NewDataWorker(c output.DataCollector, f output.DataFlagger, r relational.SnapshotRepository, opts ...WorkerOption) (*DataWorker, error) {
	if c == nil || f == nil {
		return nil, errors.New("collector and flagger are required")
	}
	w := &DataWorker{
		collector: c,
		flagger:   f,
		repo:      r,
		checks:    engine.DefaultConfig(),
		interval:  func() time.Duration { return defaultPollInterval },
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins the periodic poll loop.
func (w *DataWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("worker already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// Stop gracefully stops the worker and waits for the loop to exit.
func (w *DataWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.running = false
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Pause keeps the loop alive but skips polls until Resume.
func (w *DataWorker) Pause() {
	w.mu.Lock()
	w.paused = true
	w.mu.Unlock()
	w.log.Info("worker paused")
}

// Resume re-enables polling.
func (w *DataWorker) Resume() {
	w.mu.Lock()
	w.paused = false
	w.mu.Unlock()
	w.log.Info("worker resumed")
}

// Paused reports whether polling is suspended.
func (w *DataWorker) Paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paused
}

// Latest returns the most recent payload, or nil before the first poll.
func (w *DataWorker) Latest() *output.PipelinePayload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// PullOnce executes a single poll immediately, even when paused.
func (w *DataWorker) PullOnce(ctx context.Context) (*output.PipelinePayload, error) {
	return w.execute(ctx)
}

func (w *DataWorker) currentInterval() time.Duration {
	d := w.interval()
	if d <= 0 {
		return defaultPollInterval
	}
	return d
}

func (w *DataWorker) loop(ctx context.Context) {
	defer w.wg.Done()
	interval := w.currentInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.Paused() {
				if _, err := w.execute(ctx); err != nil && ctx.Err() == nil {
					w.log.Error("worker execution failed", "error", err)
				}
			}
			if next := w.currentInterval(); next != interval {
				w.log.Debug("poll interval changed", "from", interval, "to", next)
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (w *DataWorker) execute(ctx context.Context) (*output.PipelinePayload, error) {
	payload, err := output.RunPipeline(ctx, w.collector, w.flagger, w.checks)
	if err != nil {
		return nil, fmt.Errorf("pipeline execution failed: %w", err)
	}

	if w.repo != nil {
		res, err := w.repo.InsertPayload(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("persist snapshot: %w", err)
		}
		if w.retention > 0 {
			pruned, err := w.repo.Prune(ctx, w.retention)
			if err != nil {
				return nil, fmt.Errorf("prune snapshots: %w", err)
			}
			if pruned > 0 {
				w.log.Debug("pruned snapshots", "count", pruned)
			}
		}
		w.log.Debug("snapshot recorded",
			"snapshot_id", res.SnapshotID,
			"status", payload.Snapshot.System.Status,
			"severity", payload.Flags.SeverityLevel,
		)
	}

	w.mu.Lock()
	w.last = payload
	w.mu.Unlock()

	for _, s := range w.sinks {
		s.Publish(payload)
	}
	return payload, nil
}
