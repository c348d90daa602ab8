package relational

import (
	"context"

	"hwmonitor/internal/output"
)

// SnapshotRepository persists pipeline payloads in a bounded log.
type SnapshotRepository interface {
	// Migrate creates the schema.
	Migrate(ctx context.Context) error
	// InsertPayload stores one payload with its checks and fan details.
	InsertPayload(ctx context.Context, p *output.PipelinePayload) (InsertResult, error)
	// Prune drops everything but the newest keep snapshots.
	Prune(ctx context.Context, keep int) (int64, error)
	// Close releases database resources.
	Close() error
}

// SnapshotReader is the query side used by the tool server and exports.
type SnapshotReader interface {
	QuerySnapshots(ctx context.Context, limit int) ([]SnapshotSummary, error)
	LoadPayloads(ctx context.Context, limit int) ([]output.PipelinePayload, error)
	Aggregate(ctx context.Context) (WindowStats, error)
}

var (
	_ SnapshotRepository = (*Repo)(nil)
	_ SnapshotReader     = (*Repo)(nil)
)
