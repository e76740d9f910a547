package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
	"starsheet/internal/pipeline"
	"starsheet/internal/render"
)

var generateOutput string

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the cheatsheet page from the data files",
		RunE:  runGenerate,
	}
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (overrides the config)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(config.DefaultPath)
	if err != nil {
		return err
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}

	result, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	sink := render.NewHTMLSink(out, cfg.Project)
	renderer := render.New(result.Graph, result.Counts, result.Roots, sink)
	report, err := renderer.Run()
	if err != nil {
		return err
	}
	if err := sink.Err(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	printDiagnostics(result, report)
	fmt.Fprintf(os.Stdout, "Wrote %s\n", cfg.Output)
	return nil
}

// printDiagnostics lists build and render warnings. None of them abort
// generation; genuinely broken data fails the build long before this.
func printDiagnostics(result *pipeline.Result, report *render.Report) {
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}
	for _, ref := range report.Unreached {
		fmt.Fprintf(os.Stderr, "warning: unreached %s %s\n", ref.Kind, ref.Name)
	}
	for _, anchor := range report.BrokenLinks {
		fmt.Fprintf(os.Stderr, "warning: broken link target #%s\n", anchor)
	}
}
