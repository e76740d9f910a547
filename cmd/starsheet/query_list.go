package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func queryListCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities in the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(cmd, kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Kind to filter (event, group, ship)")
	return cmd
}

func runQueryList(cmd *cobra.Command, kind string) error {
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

	entities, err := db.ListEntities(ctx, kind)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		fmt.Fprintln(os.Stdout, "No entities found.")
		return nil
	}

	for _, entity := range entities {
		fmt.Fprintf(os.Stdout, "%s (%s) refs=%d\n", entity.Name, entity.Kind, entity.InDegree)
	}
	return nil
}
