package output

import (
	"context"
	"fmt"

	"hwmonitor/internal/engine"
	"hwmonitor/internal/flagger"
	"hwmonitor/internal/simulator"
)

// PipelinePayload is one poll with its checks and flags, ready for the
// recorder, the websocket feed and the tool server.
type PipelinePayload struct {
	Snapshot simulator.Snapshot   `json:"snapshot"`
	Checks   []engine.CheckResult `json:"checks"`
	Flags    flagger.Flags        `json:"flags"`
}

// DataCollector produces snapshots. *simulator.Simulator implements it.
type DataCollector interface {
	GetAllData() simulator.Snapshot
}

// DataFlagger defines the interface for flagging snapshots.
type DataFlagger interface {
	Flag(s simulator.Snapshot) *flagger.Flags
}

// RunPipeline executes Poll -> Check -> Flag -> Bundle.
func RunPipeline(ctx context.Context, col DataCollector, flg DataFlagger, cfg engine.Config) (*PipelinePayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}

	// 1. Poll the generator
	snap := col.GetAllData()

	// 2. Per-card checks
	checks := engine.Evaluate(snap, cfg)

	// 3. Flag the data
	flags := flg.Flag(snap)

	// 4. Bundle into Output Payload
	return &PipelinePayload{
		Snapshot: snap,
		Checks:   checks,
		Flags:    *flags,
	}, nil
}
