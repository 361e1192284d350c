package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(DataPathEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv(DataPathEnv, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_path = "/tmp/mine.db"
backend = "SQLite"
theme = "neon"

[keys]
add = "+"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataPath != "/tmp/mine.db" {
		t.Errorf("DataPath: got %q", cfg.DataPath)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend: got %q", cfg.Backend)
	}
	if cfg.Theme != "neon" {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	if cfg.Keys.Add != "+" {
		t.Errorf("Keys.Add: got %q", cfg.Keys.Add)
	}
	// Unset keys fall back to defaults.
	if cfg.Keys.Delete != "d" || cfg.Keys.SaveNote != "ctrl+s" {
		t.Errorf("missing keys not filled: %+v", cfg.Keys)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverridesDataPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_path = "from-file.json"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DataPathEnv, "from-env.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataPath != "from-env.json" {
		t.Errorf("DataPath: got %q, want from-env.json", cfg.DataPath)
	}
}

func TestLoadDataPathForBackend(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
		want    string
	}{
		{"json default", `backend = "json"`, "", DefaultDataPath},
		{"sqlite default", `backend = "sqlite"`, "", DefaultSQLitePath},
		{"sqlite with json file name", "backend = \"sqlite\"\ndata_path = \"tasks.json\"", "", "tasks.json"},
		{"sqlite with env file name", `backend = "sqlite"`, "tasks.json", "tasks.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DataPathEnv, tt.env)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.DataPath != tt.want {
				t.Errorf("DataPath: got %q, want %q", cfg.DataPath, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(DataPathEnv, "")
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad toml", "data_path = ", "parse config"},
		{"unknown backend", `backend = "postgres"`, "unknown backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	t.Setenv(DataPathEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.DataPath = "elsewhere.json"
	cfg.Keys.Quit = "x"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	want := filepath.Join("/xdg", AppName, DefaultConfigFileName)
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath: got %q, want %q", got, want)
	}
}
