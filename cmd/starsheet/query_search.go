package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func querySearchCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search the index using the full-text index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySearch(cmd, args[0], kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Kind to filter (event, group, ship)")
	return cmd
}

func runQuerySearch(cmd *cobra.Command, query, kind string) error {
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

	results, err := db.Search(ctx, query, kind)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, result := range results {
		fmt.Fprintf(os.Stdout, "%s (%s) score=%.2f\n", result.Name, result.Kind, result.Score)
	}
	return nil
}
