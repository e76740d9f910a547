package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func queryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entity and reference counts for the index",
		Args:  cobra.NoArgs,
		RunE:  runQueryStats,
	}
}

func runQueryStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	stats, err := db.GetStats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Events: %d\n", stats.Events)
	fmt.Fprintf(os.Stdout, "Groups: %d\n", stats.Groups)
	fmt.Fprintf(os.Stdout, "Ships:  %d\n", stats.Ships)
	fmt.Fprintf(os.Stdout, "Edges:  %d\n", stats.Edges)
	return nil
}
