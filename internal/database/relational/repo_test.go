package relational

import (
	"context"
	"sync"
	"testing"
	"time"

	"hwmonitor/internal/engine"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
)

func openTestRepo(t *testing.T) *Repo {
	t.Helper()
	client, err := NewDuckDBClient("", WithThreads(1))
	if err != nil {
		t.Fatalf("NewDuckDBClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRepo(client.DB())
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return repo
}

func payload(simID string, cpuTemp float64, load simulator.LoadMode, at time.Time) *output.PipelinePayload {
	snap := simulator.Snapshot{
		SimulatorID: simID,
		Timestamp:   at,
		CPU:         simulator.CPUReading{Usage: 40, Temperature: cpuTemp},
		GPU:         simulator.GPUReading{Usage: 20, Temperature: cpuTemp - 5},
		Memory:      simulator.MemoryReading{Usage: 30},
		Storage:     simulator.StorageReading{Health: 98},
		Fans: simulator.FanReading{RPM: 1200, Mode: "auto", Fans: []simulator.FanDetail{
			{ID: 1, Name: "CPU Fan 1", Type: "CPU", RPM: 1200, PWM: 50},
		}},
		System: simulator.SystemOverview{Status: simulator.StatusNormal, Load: load, TotalPower: 200},
	}
	return &output.PipelinePayload{
		Snapshot: snap,
		Checks:   engine.Evaluate(snap, engine.DefaultConfig()),
		Flags:    *flagger.NewFlaggerService(flagger.DefaultConfig()).Flag(snap),
	}
}

func TestInsertAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, temp := range []float64{50, 60, 90} {
		load := simulator.LoadNormal
		if i == 2 {
			load = simulator.LoadStress
		}
		if _, err := repo.InsertPayload(ctx, payload("sim-a", temp, load, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("InsertPayload #%d: %v", i, err)
		}
	}

	got, err := repo.QuerySnapshots(ctx, 0)
	if err != nil {
		t.Fatalf("QuerySnapshots: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[0].CPUTempC != 90 || got[2].CPUTempC != 50 {
		t.Errorf("expected newest first, got %v then %v", got[0].CPUTempC, got[2].CPUTempC)
	}
	if got[0].SimulatorID != "sim-a" {
		t.Errorf("simulator id = %q", got[0].SimulatorID)
	}
	if got[0].ChecksFailing == 0 {
		t.Error("a 90°C CPU should fail at least one check")
	}
	if got[0].LoadMode != "stress" {
		t.Errorf("load mode = %q", got[0].LoadMode)
	}

	latest, err := repo.GetLatestSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.SnapshotID != got[0].SnapshotID {
		t.Error("GetLatestSnapshot should match the first row")
	}

	stats, err := repo.Aggregate(ctx)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Count != 3 || stats.MaxCPUTemp != 90 || stats.StressPolls != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.From.Equal(base) {
		t.Errorf("from = %v, want %v", stats.From, base)
	}
}

func TestQueryLimitClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 10}, {-3, 10}, {5, 5}, {100, 100}, {500, 100},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadPayloadsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if _, err := repo.InsertPayload(ctx, payload("sim-b", float64(40+i), simulator.LoadGaming, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.LoadPayloads(ctx, 2)
	if err != nil {
		t.Fatalf("LoadPayloads: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("payloads = %d, want 2", len(got))
	}
	if got[0].Snapshot.CPU.Temperature != 42 || got[1].Snapshot.CPU.Temperature != 43 {
		t.Errorf("expected the two newest oldest-first, got %v, %v",
			got[0].Snapshot.CPU.Temperature, got[1].Snapshot.CPU.Temperature)
	}
	if got[1].Snapshot.System.Load != simulator.LoadGaming {
		t.Errorf("load = %q", got[1].Snapshot.System.Load)
	}
	if len(got[1].Snapshot.Fans.Fans) != 1 {
		t.Error("fan details lost in payload round trip")
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		if _, err := repo.InsertPayload(ctx, payload("sim-c", 45, simulator.LoadNormal, now)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.Prune(ctx, 4)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned = %d, want 2", n)
	}
	if n, _ := repo.Prune(ctx, 0); n != 0 {
		t.Error("keep <= 0 must not delete")
	}
	if n, _ := repo.Prune(ctx, 10); n != 0 {
		t.Error("nothing to prune below the cap")
	}
}

func TestEmptyLog(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	rows, err := repo.QuerySnapshots(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("want empty non-nil slice, got %v", rows)
	}
	if _, err := repo.GetLatestSnapshot(ctx); err == nil {
		t.Error("expected error on empty log")
	}
	stats, err := repo.Aggregate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 0 || stats.MaxCPUTemp != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if n, err := repo.Prune(ctx, 3); err != nil || n != 0 {
		t.Errorf("Prune on empty log = %d, %v", n, err)
	}
	if _, err := repo.InsertPayload(ctx, nil); err == nil {
		t.Error("nil payload should error")
	}
	if _, err := repo.UpsertSession(ctx, ""); err == nil {
		t.Error("empty simulator id should error")
	}
}

func TestUpsertSessionStable(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	a, err := repo.UpsertSession(ctx, "sim-x")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := repo.UpsertSession(ctx, "sim-x")
	c, _ := repo.UpsertSession(ctx, "sim-y")
	if a != b {
		t.Error("same simulator should reuse its session")
	}
	if a == c {
		t.Error("different simulators need different sessions")
	}
}

func TestUpsertSessionConcurrentFirstInsert(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for round := 0; round < 10; round++ {
		repo := openTestRepo(t)
		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.InsertPayload(ctx, payload("sim-race", 50, simulator.LoadNormal, base.Add(time.Duration(i)*time.Second)))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("round %d: InsertPayload() error: %v", round, err)
			}
		}

		rows, err := repo.QuerySnapshots(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Fatalf("round %d: rows = %d, want 2", round, len(rows))
		}
		var sessions int
		if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&sessions); err != nil {
			t.Fatal(err)
		}
		if sessions != 1 {
			t.Errorf("round %d: sessions = %d, want 1", round, sessions)
		}
	}
}
