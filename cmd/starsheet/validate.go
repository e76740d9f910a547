package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
	"starsheet/internal/pipeline"
	"starsheet/internal/render"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Build the graph and report problems without writing output",
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	// A discarded render exercises every reference and anchor, so link
	// integrity gets checked exactly as in a real run.
	sink := render.NewHTMLSink(io.Discard, cfg.Project)
	renderer := render.New(result.Graph, result.Counts, result.Roots, sink)
	report, err := renderer.Run()
	if err != nil {
		return err
	}

	total := len(result.Warnings) + len(report.Warnings) + len(report.Unreached) + len(report.BrokenLinks)
	if total == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	printDiagnostics(result, report)
	fmt.Fprintf(os.Stdout, "%d issue(s) found.\n", total)
	return nil
}
