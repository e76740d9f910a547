package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func queryLinksCmd() *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "links <name>",
		Short: "List the references an entity makes or receives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryLinks(cmd, args[0], direction)
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "out", "out (references it makes) or in (references to it)")
	return cmd
}

func runQueryLinks(cmd *cobra.Command, name, direction string) error {
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

	edges, err := db.ListEdges(ctx, name, direction)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		fmt.Fprintln(os.Stdout, "No links found.")
		return nil
	}

	for _, e := range edges {
		fmt.Fprintf(os.Stdout, "%s (%s) -[%s]-> %s (%s)\n",
			e.SrcName, e.SrcKind, e.EdgeType, e.DstName, e.DstKind)
	}
	return nil
}
