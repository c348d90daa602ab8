// Package mcpserver exposes the telemetry generator as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hwmonitor/internal/control"
	"hwmonitor/internal/database/relational"
	"hwmonitor/internal/engine"
	"hwmonitor/internal/logger"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
	"hwmonitor/internal/validator"
)

// Generator is the slice of *simulator.Simulator the tools need.
type Generator interface {
	control.Target
	LoadMode() simulator.LoadMode
	AmbientTemperature() float64
	UpdateInterval() time.Duration
	HistoryAverage(kind simulator.Kind, metric simulator.Metric, samples int) float64
	HistoryPeak(kind simulator.Kind, metric simulator.Metric) float64
	History(kind simulator.Kind, metric simulator.Metric) []float64
}

// Poller is the background worker feeding the snapshot log.
type Poller interface {
	PullOnce(ctx context.Context) (*output.PipelinePayload, error)
	Latest() *output.PipelinePayload
	Pause()
	Resume()
	Paused() bool
}

// Server wraps the MCP server with generator capabilities.
type Server struct {
	mcpServer *mcp.Server
	gen       Generator
	poller    Poller
	repo      relational.SnapshotReader
	ctl       *control.Controller
	checks    engine.Config
	v         validator.Validator
	log       logger.Logger
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string
}

// NewServer creates a new MCP server instance. repo may be nil, in which case
// the history tools report that recording is disabled.
func NewServer(cfg Config, gen Generator, poller Poller, repo relational.SnapshotReader, log logger.Logger) (*Server, error) {
	if gen == nil || poller == nil {
		return nil, errors.New("generator and poller are required")
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = "hwmonitor"
	}

	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		gen:       gen,
		poller:    poller,
		repo:      repo,
		ctl:       control.New(gen, poller),
		checks:    engine.DefaultConfig(),
		v:         validator.NewValidator(),
		log:       log,
	}
	s.registerTools()
	return s, nil
}

// Start serves MCP over stdio until ctx is cancelled or the client leaves.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_snapshot",
		Description: "Get the latest simulated hardware snapshot with per-card checks and risk flags. Set fresh=true to poll the generator immediately instead of returning the last recorded poll.",
	}, s.handleGetSnapshot)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the dashboard view of the latest snapshot: one section per hardware card with status, temperature class and display items.",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_generator_state",
		Description: "Get the generator settings: load mode, ambient temperature, update interval and whether polling is paused.",
	}, s.handleGetState)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "control_generator",
		Description: "Change the generator. Actions: set_load (mode normal|gaming|stress), set_ambient (value in °C, clamped to 15..40), set_interval (value in seconds, clamped to 1..10), reset, pause, resume.",
	}, s.handleControl)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "Get a rolling history stream (up to 20 samples) with its average and peak. Streams: cpu/temperature, cpu/usage, gpu/temperature, gpu/usage, memory/usage.",
	}, s.handleGetHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recent_snapshots",
		Description: "Query recorded snapshot summaries from DuckDB, newest first. Use for trends across polls.",
	}, s.handleGetRecentSnapshots)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_window_stats",
		Description: "Aggregate the recorded snapshot log: averages and peaks of CPU and GPU temperature, power, worst severity and stress-load poll count.",
	}, s.handleGetWindowStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_snapshots",
		Description: "Export full recorded payloads, oldest first, for offline analysis.",
	}, s.handleExportSnapshots)
}
