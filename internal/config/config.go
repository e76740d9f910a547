package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the project config.
const DefaultPath = "starsheet.yaml"

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	DataDir  string         `yaml:"data_dir"`
	Output   string         `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`

	// Entry-point names: events (or groups, expanded to their cases)
	// that the game can start from. Everything unreachable from these is
	// reported as unused content.
	Roots []string `yaml:"roots"`

	// Data files carrying additional entry points and translations.
	SectorFiles   []string `yaml:"sector_files"`
	BossFiles     []string `yaml:"boss_files"`
	TextFiles     []string `yaml:"text_files"`
	BlueprintFile string   `yaml:"blueprint_file"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if len(cfg.Roots) == 0 && len(cfg.SectorFiles) == 0 {
		return fmt.Errorf("at least one root or sector file is required")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		cfg.Output = "cheatsheet.html"
	}

	seen := make(map[string]struct{})
	for _, name := range cfg.Roots {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty root name")
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("duplicate root name: %s", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
