package database

import (
	"context"
	"fmt"

	"hwmonitor/internal/config"
	"hwmonitor/internal/database/relational"
)

// OpenRecorder opens the DuckDB snapshot log described by cfg and creates its
// schema. Closing the returned repo closes the database.
func OpenRecorder(ctx context.Context, cfg config.Config) (*relational.Repo, error) {
	client, err := relational.NewDuckDBClient(cfg.RecorderDSN, relational.WithTimeout(cfg.RecorderTimeout))
	if err != nil {
		return nil, err
	}
	repo := relational.NewRepo(client.DB())

	if cfg.RecorderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RecorderTimeout)
		defer cancel()
	}
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("migrate snapshot log: %w", err)
	}
	return repo, nil
}
