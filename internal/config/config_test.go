package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starsheet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeConfig(t, `
project: ftl
version: 1
data_dir: ./data
database:
  dsn: sqlite://starsheet.db
roots:
  - START_BEACON
sector_files:
  - sector_data.xml
text_files:
  - text_events.xml
blueprint_file: blueprints.xml
`)
	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Project != "ftl" || cfg.DataDir != "./data" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Output != "cheatsheet.html" {
		t.Fatalf("expected default output, got %q", cfg.Output)
	}
	if cfg.Database.DSN != "sqlite://starsheet.db" {
		t.Fatalf("unexpected DSN: %q", cfg.Database.DSN)
	}
	if len(cfg.Roots) != 1 || cfg.Roots[0] != "START_BEACON" {
		t.Fatalf("unexpected roots: %v", cfg.Roots)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing project",
			content: "version: 1\ndata_dir: ./data\nroots: [A]\n",
			wantErr: "project name is required",
		},
		{
			name:    "wrong version",
			content: "project: p\nversion: 2\ndata_dir: ./data\nroots: [A]\n",
			wantErr: "unsupported version",
		},
		{
			name:    "missing data dir",
			content: "project: p\nversion: 1\nroots: [A]\n",
			wantErr: "data_dir is required",
		},
		{
			name:    "no entry points",
			content: "project: p\nversion: 1\ndata_dir: ./data\n",
			wantErr: "at least one root or sector file",
		},
		{
			name:    "duplicate root",
			content: "project: p\nversion: 1\ndata_dir: ./data\nroots: [A, A]\n",
			wantErr: "duplicate root name",
		},
		{
			name:    "empty root",
			content: "project: p\nversion: 1\ndata_dir: ./data\nroots: [\"\"]\n",
			wantErr: "empty root name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadProjectConfigMissingFile(t *testing.T) {
	if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
