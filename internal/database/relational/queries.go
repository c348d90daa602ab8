package relational

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hwmonitor/internal/output"
)

const (
	defaultQueryLimit = 10
	maxQueryLimit     = 100
)

// SnapshotSummary represents a simplified snapshot for queries.
type SnapshotSummary struct {
	SnapshotID    int64     `json:"snapshot_id"`
	SimulatorID   string    `json:"simulator_id"`
	CollectedAt   time.Time `json:"collected_at"`
	LoadMode      string    `json:"load_mode"`
	Status        string    `json:"status"`
	CPUUsagePct   float64   `json:"cpu_usage_pct"`
	CPUTempC      float64   `json:"cpu_temp_c"`
	GPUUsagePct   float64   `json:"gpu_usage_pct"`
	GPUTempC      float64   `json:"gpu_temp_c"`
	MemUsagePct   float64   `json:"mem_usage_pct"`
	StorageHealth float64   `json:"storage_health_pct"`
	FanRPM        float64   `json:"fan_rpm"`
	TotalPowerW   float64   `json:"total_power_w"`
	SeverityLevel int32     `json:"severity_level"`
	RiskScore     int32     `json:"risk_score"`
	Explanation   string    `json:"explanation"`
	ChecksFailing int32     `json:"checks_failing"`
}

// WindowStats aggregates the retained log.
type WindowStats struct {
	Count       int64     `json:"count"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	AvgCPUTemp  float64   `json:"avg_cpu_temp_c"`
	MaxCPUTemp  float64   `json:"max_cpu_temp_c"`
	AvgGPUTemp  float64   `json:"avg_gpu_temp_c"`
	MaxGPUTemp  float64   `json:"max_gpu_temp_c"`
	AvgPower    float64   `json:"avg_power_w"`
	MaxSeverity int32     `json:"max_severity"`
	StressPolls int64     `json:"stress_polls"`
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit // Safety limit
	}
	return limit
}

// QuerySnapshots retrieves the newest snapshots first.
func (r *Repo) QuerySnapshots(ctx context.Context, limit int) ([]SnapshotSummary, error) {
	query := `
		SELECT
			s.snapshot_id,
			COALESCE(se.simulator_id, 'unknown') AS simulator_id,
			s.collected_at,
			s.load_mode,
			s.status,
			s.cpu_usage_pct,
			s.cpu_temp_c,
			s.gpu_usage_pct,
			s.gpu_temp_c,
			s.mem_usage_pct,
			s.storage_health_pct,
			s.fan_rpm,
			s.total_power_w,
			s.severity_level,
			s.risk_score,
			s.explanation,
			(SELECT COUNT(*) FROM snapshot_checks c
			  WHERE c.snapshot_id = s.snapshot_id AND c.status <> 'OK') AS checks_failing
		FROM snapshots s
		LEFT JOIN sessions se ON s.session_id = se.session_id
		ORDER BY s.snapshot_id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query snapshots failed: %w", err)
	}
	defer rows.Close()

	snapshots := []SnapshotSummary{} // Initialize as empty slice, not nil
	for rows.Next() {
		var s SnapshotSummary
		var explanation sql.NullString

		err := rows.Scan(
			&s.SnapshotID,
			&s.SimulatorID,
			&s.CollectedAt,
			&s.LoadMode,
			&s.Status,
			&s.CPUUsagePct,
			&s.CPUTempC,
			&s.GPUUsagePct,
			&s.GPUTempC,
			&s.MemUsagePct,
			&s.StorageHealth,
			&s.FanRPM,
			&s.TotalPowerW,
			&s.SeverityLevel,
			&s.RiskScore,
			&explanation,
			&s.ChecksFailing,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot failed: %w", err)
		}
		if explanation.Valid {
			s.Explanation = explanation.String
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return snapshots, nil
}

// GetLatestSnapshot retrieves the most recent snapshot.
func (r *Repo) GetLatestSnapshot(ctx context.Context) (*SnapshotSummary, error) {
	snapshots, err := r.QuerySnapshots(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots found")
	}
	return &snapshots[0], nil
}

// LoadPayloads decodes the stored payloads, oldest first, for export.
func (r *Repo) LoadPayloads(ctx context.Context, limit int) ([]output.PipelinePayload, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM (
			SELECT snapshot_id, payload FROM snapshots ORDER BY snapshot_id DESC LIMIT ?
		) ORDER BY snapshot_id ASC
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query payloads failed: %w", err)
	}
	defer rows.Close()

	payloads := []output.PipelinePayload{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan payload failed: %w", err)
		}
		var p output.PipelinePayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		payloads = append(payloads, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return payloads, nil
}

// Aggregate summarises every retained snapshot. An empty log yields a zero
// WindowStats.
func (r *Repo) Aggregate(ctx context.Context) (WindowStats, error) {
	var (
		ws             WindowStats
		from, to       sql.NullTime
		avgCPU, maxCPU sql.NullFloat64
		avgGPU, maxGPU sql.NullFloat64
		avgPower       sql.NullFloat64
		maxSev         sql.NullInt32
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			MIN(collected_at),
			MAX(collected_at),
			AVG(cpu_temp_c),
			MAX(cpu_temp_c),
			AVG(gpu_temp_c),
			MAX(gpu_temp_c),
			AVG(total_power_w),
			MAX(severity_level),
			COUNT(*) FILTER (WHERE load_mode = 'stress')
		FROM snapshots
	`).Scan(&ws.Count, &from, &to, &avgCPU, &maxCPU, &avgGPU, &maxGPU, &avgPower, &maxSev, &ws.StressPolls)
	if err != nil {
		return WindowStats{}, fmt.Errorf("aggregate snapshots failed: %w", err)
	}

	ws.From = from.Time
	ws.To = to.Time
	ws.AvgCPUTemp = avgCPU.Float64
	ws.MaxCPUTemp = maxCPU.Float64
	ws.AvgGPUTemp = avgGPU.Float64
	ws.MaxGPUTemp = maxGPU.Float64
	ws.AvgPower = avgPower.Float64
	ws.MaxSeverity = maxSev.Int32
	return ws, nil
}
