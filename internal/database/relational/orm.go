// Storage notes:
//   - One wide row per poll in snapshots, with checks and fan details in
//     child tables keyed by snapshot_id.
//   - sessions holds one row per simulator instance so several generators can
//     share a log file.
//   - current_state mirrors the newest snapshot per session for cheap reads.
//   - The full payload is kept as JSON for export.
package relational

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"hwmonitor/internal/output"
)

// =============================================================================
// SCHEMA SQL
// =============================================================================

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
  session_id     BIGINT PRIMARY KEY,
  simulator_id   VARCHAR NOT NULL UNIQUE,
  created_at     TIMESTAMP NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshots (
  snapshot_id        BIGINT PRIMARY KEY,
  session_id         BIGINT NOT NULL,
  collected_at       TIMESTAMP NOT NULL,
  load_mode          VARCHAR NOT NULL,
  status             VARCHAR NOT NULL,
  cpu_usage_pct      DOUBLE,
  cpu_temp_c         DOUBLE,
  cpu_freq_ghz       DOUBLE,
  cpu_power_w        DOUBLE,
  gpu_usage_pct      DOUBLE,
  gpu_temp_c         DOUBLE,
  gpu_mem_used_gb    DOUBLE,
  gpu_power_w        DOUBLE,
  mem_used_gb        DOUBLE,
  mem_usage_pct      DOUBLE,
  storage_used_gb    DOUBLE,
  storage_temp_c     DOUBLE,
  storage_health_pct DOUBLE,
  board_temp_c       DOUBLE,
  board_voltage_v    DOUBLE,
  fan_rpm            DOUBLE,
  fan_mode           VARCHAR,
  avg_temp_c         DOUBLE,
  avg_usage_pct      DOUBLE,
  total_power_w      DOUBLE,
  uptime_seconds     DOUBLE,
  severity_level     INTEGER,
  risk_score         INTEGER,
  explanation        VARCHAR,
  payload            VARCHAR NOT NULL,
  created_at         TIMESTAMP NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshot_checks (
  snapshot_id   BIGINT NOT NULL,
  position      INTEGER NOT NULL,
  kind          VARCHAR NOT NULL,
  name          VARCHAR NOT NULL,
  value         DOUBLE,
  unit          VARCHAR,
  status        VARCHAR NOT NULL,
  PRIMARY KEY(snapshot_id, position)
);

CREATE TABLE IF NOT EXISTS snapshot_fans (
  snapshot_id   BIGINT NOT NULL,
  fan_id        INTEGER NOT NULL,
  name          VARCHAR NOT NULL,
  fan_type      VARCHAR,
  rpm           DOUBLE,
  pwm           DOUBLE,
  PRIMARY KEY(snapshot_id, fan_id)
);

CREATE TABLE IF NOT EXISTS current_state (
  session_id       BIGINT PRIMARY KEY,
  last_snapshot_id BIGINT,
  collected_at     TIMESTAMP,
  load_mode        VARCHAR,
  status           VARCHAR,
  cpu_temp_c       DOUBLE,
  gpu_temp_c       DOUBLE,
  severity_level   INTEGER,
  risk_score       INTEGER,
  explanation      VARCHAR,
  updated_at       TIMESTAMP NOT NULL DEFAULT now()
);
`

// =============================================================================
// REPO IMPLEMENTATION
// =============================================================================

type Repo struct {
	db *sql.DB
	mu sync.Mutex

	lastID int64

	// sessMu serializes lookup-or-insert of session rows.
	sessMu   sync.Mutex
	sessions map[string]int64
}

// InsertResult identifies the rows written for one payload.
type InsertResult struct {
	SessionID  int64
	SnapshotID int64
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{
		db:       db,
		sessions: make(map[string]int64),
	}
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, SchemaSQL)
	return err
}

// NewID returns a time-based ID that is strictly increasing for this repo.
func (r *Repo) NewID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := time.Now().UnixNano()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

// UpsertSession ensures the simulator has a session row and returns its ID.
func (r *Repo) UpsertSession(ctx context.Context, simulatorID string) (int64, error) {
	if simulatorID == "" {
		return 0, errors.New("simulatorID required")
	}

	r.sessMu.Lock()
	defer r.sessMu.Unlock()
	if id, ok := r.sessions[simulatorID]; ok {
		return id, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions(session_id, simulator_id) VALUES(?, ?) ON CONFLICT (simulator_id) DO NOTHING`,
		r.NewID(), simulatorID,
	); err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT session_id FROM sessions WHERE simulator_id = ?`, simulatorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	r.sessions[simulatorID] = id
	return id, nil
}

// InsertPayload writes one poll, its checks and fan details in a single
// transaction and refreshes current_state.
func (r *Repo) InsertPayload(ctx context.Context, p *output.PipelinePayload) (InsertResult, error) {
	if p == nil {
		return InsertResult{}, errors.New("nil payload")
	}
	snap := p.Snapshot

	sessionID, err := r.UpsertSession(ctx, snap.SimulatorID)
	if err != nil {
		return InsertResult{}, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return InsertResult{}, fmt.Errorf("encode payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	snapshotID := r.NewID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots(
			snapshot_id, session_id, collected_at, load_mode, status,
			cpu_usage_pct, cpu_temp_c, cpu_freq_ghz, cpu_power_w,
			gpu_usage_pct, gpu_temp_c, gpu_mem_used_gb, gpu_power_w,
			mem_used_gb, mem_usage_pct,
			storage_used_gb, storage_temp_c, storage_health_pct,
			board_temp_c, board_voltage_v,
			fan_rpm, fan_mode,
			avg_temp_c, avg_usage_pct, total_power_w, uptime_seconds,
			severity_level, risk_score, explanation, payload
		) VALUES (?,?,?,?,?, ?,?,?,?, ?,?,?,?, ?,?, ?,?,?, ?,?, ?,?, ?,?,?,?, ?,?,?,?)
	`,
		snapshotID, sessionID, snap.Timestamp, string(snap.System.Load), string(snap.System.Status),
		snap.CPU.Usage, snap.CPU.Temperature, snap.CPU.Frequency, snap.CPU.Power,
		snap.GPU.Usage, snap.GPU.Temperature, snap.GPU.MemoryUsed, snap.GPU.Power,
		snap.Memory.Used, snap.Memory.Usage,
		snap.Storage.Used, snap.Storage.Temperature, snap.Storage.Health,
		snap.Motherboard.Temperature, snap.Motherboard.Voltage,
		snap.Fans.RPM, nullStr(snap.Fans.Mode),
		snap.System.AvgTemperature, snap.System.AvgUsage, snap.System.TotalPower, snap.System.UptimeSeconds,
		p.Flags.SeverityLevel, p.Flags.RiskScore, nullStr(p.Flags.Explanation), string(raw),
	)
	if err != nil {
		return InsertResult{}, fmt.Errorf("insert snapshot: %w", err)
	}

	if err := r.insertChildrenTx(ctx, tx, snapshotID, p); err != nil {
		return InsertResult{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO current_state(
			session_id, last_snapshot_id, collected_at, load_mode, status,
			cpu_temp_c, gpu_temp_c, severity_level, risk_score, explanation, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?, now())
		ON CONFLICT (session_id) DO UPDATE SET
			last_snapshot_id = excluded.last_snapshot_id,
			collected_at     = excluded.collected_at,
			load_mode        = excluded.load_mode,
			status           = excluded.status,
			cpu_temp_c       = excluded.cpu_temp_c,
			gpu_temp_c       = excluded.gpu_temp_c,
			severity_level   = excluded.severity_level,
			risk_score       = excluded.risk_score,
			explanation      = excluded.explanation,
			updated_at       = now()
	`,
		sessionID, snapshotID, snap.Timestamp, string(snap.System.Load), string(snap.System.Status),
		snap.CPU.Temperature, snap.GPU.Temperature, p.Flags.SeverityLevel, p.Flags.RiskScore, nullStr(p.Flags.Explanation),
	)
	if err != nil {
		return InsertResult{}, fmt.Errorf("update current_state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return InsertResult{}, err
	}
	return InsertResult{SessionID: sessionID, SnapshotID: snapshotID}, nil
}

func (r *Repo) insertChildrenTx(ctx context.Context, tx *sql.Tx, snapshotID int64, p *output.PipelinePayload) error {
	for i, c := range p.Checks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_checks(snapshot_id, position, kind, name, value, unit, status) VALUES(?,?,?,?,?,?,?)`,
			snapshotID, i, string(c.Kind), c.Name, c.Value, nullStr(c.Unit), c.Status,
		); err != nil {
			return fmt.Errorf("insert check %q: %w", c.Name, err)
		}
	}
	for _, f := range p.Snapshot.Fans.Fans {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_fans(snapshot_id, fan_id, name, fan_type, rpm, pwm) VALUES(?,?,?,?,?,?)`,
			snapshotID, f.ID, f.Name, nullStr(f.Type), f.RPM, f.PWM,
		); err != nil {
			return fmt.Errorf("insert fan %q: %w", f.Name, err)
		}
	}
	return nil
}

// Prune keeps the newest keep snapshots and deletes the rest along with
// their child rows. keep <= 0 disables pruning.
func (r *Repo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var cutoff sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MIN(snapshot_id) FROM (
			SELECT snapshot_id FROM snapshots ORDER BY snapshot_id DESC LIMIT ?
		)
	`, keep).Scan(&cutoff)
	if err != nil {
		return 0, fmt.Errorf("find prune cutoff: %w", err)
	}
	if !cutoff.Valid {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"snapshot_checks", "snapshot_fans"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE snapshot_id < ?`, cutoff.Int64); err != nil {
			return 0, fmt.Errorf("prune %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE snapshot_id < ?`, cutoff.Int64)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
