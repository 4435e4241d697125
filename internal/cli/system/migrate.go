package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
)

type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	cctx := context.Background()

	versioner, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return fmt.Errorf("storage does not support migrations")
	}
	before, _, err := versioner.SchemaVersion(cctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	// Init applies pending migrations and keeps existing data
	if err := ctx.Store.Init(cctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	after, latest, err := versioner.SchemaVersion(cctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if after == before {
		ctx.Printf("No migrations to apply. Database is up to date (version %d).\n", latest)
		return nil
	}
	ctx.Printf("Successfully migrated schema from version %d to %d.\n", before, after)
	return nil
}
