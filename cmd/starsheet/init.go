package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"starsheet/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var dataDir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new starsheet project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dataDir)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory holding the XML data files")
	return cmd
}

func runInit(projectName, dataDir string) error {
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultPath)
	}

	contents := fmt.Sprintf(`project: %s
version: 1

data_dir: %s
output: cheatsheet.html

database:
  dsn: sqlite://starsheet.db

roots:
  - START_BEACON

sector_files: []
boss_files: []
text_files: []
blueprint_file: ""
`, projectName, dataDir)

	if err := os.WriteFile(config.DefaultPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultPath, err)
	}
	return nil
}
