package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
	"starsheet/internal/index"
	"starsheet/internal/pipeline"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the queryable database index from the data files",
		RunE:  runIndex,
	}
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	snap := index.Build(result)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := index.Write(ctx, db, snap); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Index rebuilt.")
	fmt.Fprintf(os.Stdout, "  Entities: %d\n", len(snap.Entities))
	fmt.Fprintf(os.Stdout, "  Edges:    %d\n", len(snap.Edges))
	return nil
}
