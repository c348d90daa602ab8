package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hwmonitor/internal/control"
	"hwmonitor/internal/database/relational"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
	"hwmonitor/internal/validator"
)

var errNoRecorder = errors.New("snapshot recording is disabled")

// SnapshotArgs defines the input for get_snapshot.
type SnapshotArgs struct {
	Fresh bool `json:"fresh,omitempty" jsonschema:"poll the generator now instead of returning the last poll"`
}

// DashboardArgs defines the input for get_dashboard.
type DashboardArgs struct{}

// StateArgs defines the input for get_generator_state.
type StateArgs struct{}

// StateResult describes the generator settings.
type StateResult struct {
	LoadMode              string  `json:"load_mode" jsonschema:"normal, gaming or stress"`
	AmbientTemperature    float64 `json:"ambient_temperature_c" jsonschema:"room temperature in °C"`
	UpdateIntervalSeconds float64 `json:"update_interval_seconds" jsonschema:"poll interval"`
	Paused                bool    `json:"paused" jsonschema:"whether background polling is suspended"`
}

// ControlResult echoes the state after a command.
type ControlResult struct {
	Applied string      `json:"applied" jsonschema:"the action that ran"`
	State   StateResult `json:"state" jsonschema:"generator settings after the command"`
}

// HistoryArgs defines the input for get_history.
type HistoryArgs struct {
	Component string `json:"component" validate:"required,oneof=cpu gpu memory" jsonschema:"cpu, gpu or memory"`
	Metric    string `json:"metric" validate:"required,oneof=temperature usage" jsonschema:"temperature or usage"`
	Samples   int    `json:"samples,omitempty" validate:"gte=0,lte=20" jsonschema:"samples to average (default 5)"`
}

// HistoryResult wraps a history stream.
type HistoryResult struct {
	Component string    `json:"component"`
	Metric    string    `json:"metric"`
	Values    []float64 `json:"values" jsonschema:"oldest first"`
	Average   float64   `json:"average"`
	Peak      float64   `json:"peak"`
}

// RecentSnapshotsArgs defines the input for get_recent_snapshots.
type RecentSnapshotsArgs struct {
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=100" jsonschema:"number of snapshots to return (default 10)"`
}

// RecentSnapshotsResult wraps snapshot results.
type RecentSnapshotsResult struct {
	Snapshots []relational.SnapshotSummary `json:"snapshots" jsonschema:"recorded snapshots, newest first"`
}

// WindowStatsArgs defines the input for get_window_stats.
type WindowStatsArgs struct{}

// ExportArgs defines the input for export_snapshots.
type ExportArgs struct {
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=100" jsonschema:"number of payloads to export (default 10)"`
}

// ExportResult wraps exported payloads.
type ExportResult struct {
	Payloads []output.PipelinePayload `json:"payloads" jsonschema:"full payloads, oldest first"`
}

func (s *Server) validate(args any) error {
	return validator.Error(s.v.Validate(args))
}

// latest returns the last poll, polling once when nothing has run yet.
func (s *Server) latest(ctx context.Context, fresh bool) (*output.PipelinePayload, error) {
	if !fresh {
		if p := s.poller.Latest(); p != nil {
			return p, nil
		}
	}
	p, err := s.poller.PullOnce(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to poll generator: %w", err)
	}
	return p, nil
}

func (s *Server) handleGetSnapshot(ctx context.Context, _ *mcp.CallToolRequest, args SnapshotArgs) (*mcp.CallToolResult, *output.PipelinePayload, error) {
	p, err := s.latest(ctx, args.Fresh)
	if err != nil {
		return nil, nil, err
	}
	return nil, p, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, _ *mcp.CallToolRequest, _ DashboardArgs) (*mcp.CallToolResult, *output.DashboardView, error) {
	p, err := s.latest(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	view := output.BuildDashboard(p.Checks, p.Snapshot, s.checks)
	return nil, &view, nil
}

func (s *Server) state() StateResult {
	return StateResult{
		LoadMode:              string(s.gen.LoadMode()),
		AmbientTemperature:    s.gen.AmbientTemperature(),
		UpdateIntervalSeconds: s.gen.UpdateInterval().Seconds(),
		Paused:                s.poller.Paused(),
	}
}

func (s *Server) handleGetState(_ context.Context, _ *mcp.CallToolRequest, _ StateArgs) (*mcp.CallToolResult, StateResult, error) {
	return nil, s.state(), nil
}

func (s *Server) handleControl(_ context.Context, _ *mcp.CallToolRequest, cmd control.Command) (*mcp.CallToolResult, ControlResult, error) {
	if err := s.ctl.Apply(cmd); err != nil {
		return nil, ControlResult{}, err
	}
	s.log.Info("generator updated", "action", cmd.Action)
	return nil, ControlResult{Applied: cmd.Action, State: s.state()}, nil
}

func (s *Server) handleGetHistory(_ context.Context, _ *mcp.CallToolRequest, args HistoryArgs) (*mcp.CallToolResult, HistoryResult, error) {
	if err := s.validate(args); err != nil {
		return nil, HistoryResult{}, err
	}
	kind, metric := simulator.Kind(args.Component), simulator.Metric(args.Metric)
	if kind == simulator.KindMemory && metric == simulator.MetricTemperature {
		return nil, HistoryResult{}, fmt.Errorf("memory has no temperature history")
	}
	values := s.gen.History(kind, metric)
	if values == nil {
		values = []float64{}
	}
	return nil, HistoryResult{
		Component: args.Component,
		Metric:    args.Metric,
		Values:    values,
		Average:   s.gen.HistoryAverage(kind, metric, args.Samples),
		Peak:      s.gen.HistoryPeak(kind, metric),
	}, nil
}

func (s *Server) handleGetRecentSnapshots(ctx context.Context, _ *mcp.CallToolRequest, args RecentSnapshotsArgs) (*mcp.CallToolResult, RecentSnapshotsResult, error) {
	if err := s.validate(args); err != nil {
		return nil, RecentSnapshotsResult{}, err
	}
	if s.repo == nil {
		return nil, RecentSnapshotsResult{}, errNoRecorder
	}
	snapshots, err := s.repo.QuerySnapshots(ctx, args.Limit)
	if err != nil {
		return nil, RecentSnapshotsResult{}, fmt.Errorf("failed to query snapshots: %w", err)
	}
	return nil, RecentSnapshotsResult{Snapshots: snapshots}, nil
}

func (s *Server) handleGetWindowStats(ctx context.Context, _ *mcp.CallToolRequest, _ WindowStatsArgs) (*mcp.CallToolResult, relational.WindowStats, error) {
	if s.repo == nil {
		return nil, relational.WindowStats{}, errNoRecorder
	}
	stats, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, relational.WindowStats{}, fmt.Errorf("failed to aggregate snapshots: %w", err)
	}
	return nil, stats, nil
}

func (s *Server) handleExportSnapshots(ctx context.Context, _ *mcp.CallToolRequest, args ExportArgs) (*mcp.CallToolResult, ExportResult, error) {
	if err := s.validate(args); err != nil {
		return nil, ExportResult{}, err
	}
	if s.repo == nil {
		return nil, ExportResult{}, errNoRecorder
	}
	payloads, err := s.repo.LoadPayloads(ctx, args.Limit)
	if err != nil {
		return nil, ExportResult{}, fmt.Errorf("failed to export snapshots: %w", err)
	}
	return nil, ExportResult{Payloads: payloads}, nil
}
