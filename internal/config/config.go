// Package config loads the TOML settings file and resolves the task file location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the configuration directory name.
	AppName = "tasks"

	DefaultConfigFileName = "config.toml"
	DefaultDataPath       = "tasks.json"
	DefaultSQLitePath     = "tasks.db"

	// DataPathEnv overrides data_path from the config file.
	DataPathEnv = "TASKS_FILE"
)

// Backend names accepted in the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Edit     string `toml:"edit"`
	Note     string `toml:"note"`
	Delete   string `toml:"delete"`
	Search   string `toml:"search"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	SaveNote string `toml:"save_note"`
	IDAsc    string `toml:"sort_id_asc"`
	IDDesc   string `toml:"sort_id_desc"`
	NameAsc  string `toml:"sort_name_asc"`
	NameDesc string `toml:"sort_name_desc"`
}

type Config struct {
	DataPath string `toml:"data_path"`
	Backend  string `toml:"backend"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	Keys     Keymap `toml:"keys"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		DataPath: DefaultDataPath,
		Backend:  BackendJSON,
		Theme:    "classic",
		LogLevel: "warn",
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Edit:     "e",
			Note:     "n",
			Delete:   "d",
			Search:   "/",
			Confirm:  "enter",
			Cancel:   "esc",
			SaveNote: "ctrl+s",
			IDAsc:    "1",
			IDDesc:   "2",
			NameAsc:  "3",
			NameDesc: "4",
		},
	}
}

// DefaultPath returns the config file location.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
}

// Load reads path over the defaults. A missing file is not an error.
// The TASKS_FILE environment variable wins over data_path. When neither
// names a file, the default depends on the backend.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.DataPath = ""
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if env := strings.TrimSpace(os.Getenv(DataPathEnv)); env != "" {
		cfg.DataPath = env
	}
	if err := cfg.normalize(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	def := Default()
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "":
		c.Backend = def.Backend
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		c.DataPath = DefaultDataPath
		if c.Backend == BackendSQLite {
			c.DataPath = DefaultSQLitePath
		}
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.Keys.fill(def.Keys)
	return nil
}

func (k *Keymap) fill(def Keymap) {
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&k.Quit, def.Quit)
	set(&k.Add, def.Add)
	set(&k.Edit, def.Edit)
	set(&k.Note, def.Note)
	set(&k.Delete, def.Delete)
	set(&k.Search, def.Search)
	set(&k.Confirm, def.Confirm)
	set(&k.Cancel, def.Cancel)
	set(&k.SaveNote, def.SaveNote)
	set(&k.IDAsc, def.IDAsc)
	set(&k.IDDesc, def.IDDesc)
	set(&k.NameAsc, def.NameAsc)
	set(&k.NameDesc, def.NameDesc)
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Write stores cfg at path, creating the parent directory.
func Write(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
