package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func queryEntityCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "entity <name>",
		Short: "Display an entity and its reference counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryEntity(cmd, args[0], kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Kind to disambiguate (event, group, ship)")
	return cmd
}

func runQueryEntity(cmd *cobra.Command, name, kind string) error {
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

	entity, err := db.GetEntity(ctx, name, kind)
	if err != nil {
		return err
	}
	if entity == nil {
		fmt.Fprintf(os.Stdout, "No entity found for %q.\n", name)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Name: %s\n", entity.Name)
	fmt.Fprintf(os.Stdout, "Kind: %s\n", entity.Kind)
	fmt.Fprintf(os.Stdout, "Anchor: #%s\n", entity.Anchor)
	fmt.Fprintf(os.Stdout, "References: %d\n", entity.InDegree)
	if entity.Root {
		fmt.Fprintln(os.Stdout, "Entry point: yes")
	}
	if entity.Pinned {
		fmt.Fprintln(os.Stdout, "Pinned: yes")
	}
	if entity.Synthetic {
		fmt.Fprintln(os.Stdout, "Synthetic: yes")
	}
	if entity.Body != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", entity.Body)
	}
	return nil
}
