package config

import (
	"os"
	"testing"
)

const sampleConfig = `
api:
  base_url: http://localhost:8000/api
  timeout_seconds: 10
llm:
  provider: openai
  base_url: https://api.example.com
  api_key: dummy
  model: gpt-4o
server:
  host: 0.0.0.0
  port: "8000"
identity:
  user_id: u-123
  name: Sam
archive:
  path: /tmp/coach-archive.db
product:
  metadata_path: product_metadata.json
log:
  level: debug
`

// TestLoad verifies that Load honors CONFIG_PATH and unmarshals every section.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" {
		t.Fatalf("unexpected api base_url: %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Fatalf("unexpected timeout: %d", cfg.API.TimeoutSeconds)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if cfg.Identity.UserID != "u-123" || cfg.Identity.Name != "Sam" {
		t.Fatalf("identity not parsed: %+v", cfg.Identity)
	}
	if cfg.Archive.Path != "/tmp/coach-archive.db" {
		t.Fatalf("archive path not parsed: %s", cfg.Archive.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level not parsed: %s", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
