package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
export:
  root: "/data/facebook-export"
  self_name: "Jane Doe"

storage:
  db_path: "./test.sql"

charts:
  enabled: true
  out_dir: "./charts"

cohorts:
  prompt: false

telegram:
  enabled: true
  bot_token: "test_token"
  chat_id: "12345"

logging:
  level: "debug"
  format: "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Export.Root != "/data/facebook-export" {
		t.Errorf("export.root = %q", cfg.Export.Root)
	}
	if cfg.Export.SelfName != "Jane Doe" {
		t.Errorf("export.self_name = %q", cfg.Export.SelfName)
	}
	if cfg.Cohorts.Prompt {
		t.Error("cohorts.prompt should be false")
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.ChatID != "12345" {
		t.Errorf("unexpected telegram config: %+v", cfg.Telegram)
	}
}

func TestDefaults(t *testing.T) {
	path := writeConfig(t, `
export:
  root: "/data/facebook-export"
  self_name: "Jane Doe"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed with defaults: %v", err)
	}

	if cfg.Storage.DBPath != "./facebook.sql" {
		t.Errorf("default db_path = %q", cfg.Storage.DBPath)
	}
	if !cfg.Charts.Enabled || cfg.Charts.OutDir != "./charts" {
		t.Errorf("unexpected chart defaults: %+v", cfg.Charts)
	}
	if !cfg.Cohorts.Prompt {
		t.Error("cohorts.prompt should default to true")
	}
	if cfg.Telegram.Enabled {
		t.Error("telegram should default to disabled")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestValidateRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing export root", `
export:
  self_name: "Jane Doe"
`},
		{"missing self name", `
export:
  root: "/data/facebook-export"
`},
		{"telegram without token", `
export:
  root: "/data/facebook-export"
  self_name: "Jane Doe"
telegram:
  enabled: true
  chat_id: "12345"
`},
		{"bad log level", `
export:
  root: "/data/facebook-export"
  self_name: "Jane Doe"
logging:
  level: "verbose"
`},
	}

	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, tt.content))
		if err != nil {
			t.Fatalf("%s: Load failed: %v", tt.name, err)
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}
