package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nadissa1508/CC3089-LAB-4/internal/ingest"
	"github.com/nadissa1508/CC3089-LAB-4/internal/logger"
)

func (a *App) runLoad(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := a.setup(cmd)
	if err != nil {
		return err
	}
	// A bad manifest fails before any connection attempt.
	if _, err := ingest.DatasetsFor(cfg); err != nil {
		return err
	}

	db, err := a.connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	_, err = ingest.RunAll(ctx, cfg, db, a.Out, logger.WithComponent(log, "ingest"))
	return err
}
