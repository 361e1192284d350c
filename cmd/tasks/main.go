package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/cli"
	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/store/jsonstore"
	"github.com/idilsaglam/tasks/internal/store/sqlitestore"
	"github.com/idilsaglam/tasks/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.DefaultPath(), "config file")
	dataPath := flag.String("file", "", "task file (overrides config and $"+config.DataPathEnv+")")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(cli.ExitError)
	}
	if strings.TrimSpace(*dataPath) != "" {
		cfg.DataPath = *dataPath
	}
	ui.SetTheme(cfg.Theme)

	logger := newLogger(cfg.LogLevel, *debug)

	// Hand the remaining args to the CLI runner; no args opens the list UI.
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"ui"}
	}

	var st *store.Store
	if cli.NeedsStore(args) {
		st, err = store.Open(newBackend(cfg), store.WithLogger(logger))
		if err != nil {
			var ce *store.CorruptDataError
			if errors.As(err, &ce) {
				ui.Fail(os.Stderr, "cannot start: "+err.Error())
				ui.Info(os.Stderr, "fix or move the file aside and run again")
			} else {
				ui.Fail(os.Stderr, "load: "+err.Error())
			}
			os.Exit(cli.ExitError)
		}
	}

	code := cli.Run(st, args, cli.Options{
		Out:        os.Stdout,
		Err:        os.Stderr,
		Config:     cfg,
		ConfigPath: *configPath,
	})
	os.Exit(code)
}

func newLogger(level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "tasks"})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", level)
		lvl = log.WarnLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func newBackend(cfg config.Config) store.Backend {
	if cfg.Backend == config.BackendSQLite {
		return sqlitestore.New(cfg.DataPath)
	}
	return jsonstore.New(cfg.DataPath)
}
