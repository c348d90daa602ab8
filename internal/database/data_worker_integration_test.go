package database_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hwmonitor/internal/config"
	"hwmonitor/internal/database"
	"hwmonitor/internal/database/relational"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
)

type recordingSink struct {
	mu       sync.Mutex
	payloads []*output.PipelinePayload
}

func (s *recordingSink) Publish(p *output.PipelinePayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func newRepo(t *testing.T) (*relational.DuckDBClient, *relational.Repo) {
	t.Helper()
	client, err := relational.NewDuckDBClient("")
	if err != nil {
		t.Fatalf("failed to create duckdb client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	repo := relational.NewRepo(client.DB())
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return client, repo
}

// TestDataWorkerPullAndPersist tests end-to-end: generator -> DataWorker -> DuckDB -> sink
func TestDataWorkerPullAndPersist(t *testing.T) {
	ctx := context.Background()
	client, repo := newRepo(t)

	sim := simulator.New(simulator.WithSeed(7))
	sink := &recordingSink{}
	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), repo,
		database.WithSinks(sink),
	)
	if err != nil {
		t.Fatalf("failed to create data worker: %v", err)
	}

	payload, err := worker.PullOnce(ctx)
	if err != nil {
		t.Fatalf("PullOnce failed: %v", err)
	}

	var snapCount int
	if err := client.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&snapCount); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if snapCount != 1 {
		t.Errorf("expected 1 snapshot row, got %d", snapCount)
	}

	var checkCount, fanCount int
	if err := client.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_checks").Scan(&checkCount); err != nil {
		t.Fatalf("count checks: %v", err)
	}
	if checkCount != len(payload.Checks) {
		t.Errorf("checks stored = %d, want %d", checkCount, len(payload.Checks))
	}
	if err := client.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_fans").Scan(&fanCount); err != nil {
		t.Fatalf("count fans: %v", err)
	}
	if fanCount != len(payload.Snapshot.Fans.Fans) {
		t.Errorf("fans stored = %d, want %d", fanCount, len(payload.Snapshot.Fans.Fans))
	}

	var cpuTemp float64
	if err := client.DB().QueryRowContext(ctx, "SELECT cpu_temp_c FROM current_state").Scan(&cpuTemp); err != nil {
		t.Fatalf("read current_state: %v", err)
	}
	if cpuTemp != payload.Snapshot.CPU.Temperature {
		t.Errorf("current_state cpu temp = %v, want %v", cpuTemp, payload.Snapshot.CPU.Temperature)
	}

	if sink.count() != 1 {
		t.Errorf("sink received %d payloads, want 1", sink.count())
	}
	if worker.Latest() != payload {
		t.Error("Latest should return the last payload")
	}
}

func TestDataWorkerRetention(t *testing.T) {
	ctx := context.Background()
	client, repo := newRepo(t)

	sim := simulator.New(simulator.WithSeed(1))
	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), repo,
		database.WithRetention(3),
	)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := worker.PullOnce(ctx); err != nil {
			t.Fatalf("PullOnce #%d: %v", i, err)
		}
	}

	var n int
	if err := client.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("snapshots retained = %d, want 3", n)
	}
	var orphans int
	if err := client.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM snapshot_checks c
		WHERE NOT EXISTS (SELECT 1 FROM snapshots s WHERE s.snapshot_id = c.snapshot_id)
	`).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("orphaned check rows = %d", orphans)
	}
}

func TestDataWorkerLoopAndPause(t *testing.T) {
	sim := simulator.New(simulator.WithSeed(3))
	sink := &recordingSink{}
	worker, err := database.NewDataWorker(sim, flagger.NewFlaggerService(flagger.DefaultConfig()), nil,
		database.WithSinks(sink),
		database.WithInterval(func() time.Duration { return 10 * time.Millisecond }),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := worker.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := worker.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}

	deadline := time.Now().Add(2 * time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.count() < 2 {
		t.Fatalf("worker produced %d payloads", sink.count())
	}

	worker.Pause()
	if !worker.Paused() {
		t.Error("Paused() = false after Pause")
	}
	time.Sleep(30 * time.Millisecond) // let an in-flight tick finish
	before := sink.count()
	time.Sleep(50 * time.Millisecond)
	if got := sink.count(); got != before {
		t.Errorf("paused worker published %d payloads", got-before)
	}

	worker.Resume()
	deadline = time.Now().Add(2 * time.Second)
	for sink.count() == before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.count() == before {
		t.Error("worker did not resume")
	}
	worker.Stop()
}

func TestNewDataWorkerRequiresCollector(t *testing.T) {
	if _, err := database.NewDataWorker(nil, flagger.NewFlaggerService(flagger.DefaultConfig()), nil); err == nil {
		t.Error("expected error for nil collector")
	}
}

func TestOpenRecorderInMemory(t *testing.T) {
	ctx := context.Background()
	repo, err := database.OpenRecorder(ctx, config.Default())
	if err != nil {
		t.Fatalf("OpenRecorder() error: %v", err)
	}
	defer repo.Close()

	worker, err := database.NewDataWorker(simulator.New(simulator.WithSeed(3)), flagger.NewFlaggerService(flagger.DefaultConfig()), repo)
	if err != nil {
		t.Fatalf("failed to create data worker: %v", err)
	}
	if _, err := worker.PullOnce(ctx); err != nil {
		t.Fatalf("PullOnce() error: %v", err)
	}

	rows, err := repo.QuerySnapshots(ctx, 0)
	if err != nil {
		t.Fatalf("QuerySnapshots() error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}
