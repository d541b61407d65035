package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/sqlite"
	"github.com/benjamonnguyen/cadence/templates"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/cadence"
	Version = "0.1.0"
)

var errUsage = errors.New("usage")

// app holds what every subcommand needs.
type app struct {
	cfg       cadence.Config
	db        *sql.DB
	templates cadence.TemplateRepo
	tasks     cadence.TaskRepo
	settings  cadence.SettingsRepo
}

func main() {
	var isProd bool
	flag.BoolVar(&isProd, "prod", false, "load .env instead of .env.dev")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// config
	cfg, err := cadence.LoadConfig(isProd)
	if err != nil {
		log.Fatal(err)
	}

	// logger
	log.SetLevel(cfg.LogLevel)
	if cfg.LogLevel == log.DebugLevel {
		log.SetReportCaller(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initTimeout, initTimeoutC := context.WithTimeout(ctx, 10*time.Second)
	a, err := openApp(initTimeout, cfg)
	initTimeoutC()
	if err != nil {
		log.Fatal("failed init", "err", err)
	}

	err = dispatch(ctx, a, flag.Args())
	if cerr := a.db.Close(); cerr != nil {
		log.Error("failed to close db", "err", cerr)
	}
	switch {
	case errors.Is(err, errUsage):
		usage()
		os.Exit(2)
	case err != nil:
		log.Error(err)
		os.Exit(1)
	}
}

func openApp(ctx context.Context, cfg cadence.Config) (*app, error) {
	log.Debug("opening db", "url", cfg.DatabaseURL)
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tx, dbGetter := txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)
	a := &app{
		cfg:       cfg,
		db:        db,
		templates: sqlite.NewTemplateRepo(tx, dbGetter, log.Default()),
		tasks:     sqlite.NewTaskRepo(dbGetter, log.Default()),
		settings:  sqlite.NewSettingsRepo(dbGetter, log.Default()),
	}
	if err := templates.Seed(ctx, a.templates, log.Default()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func dispatch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "run":
		return runCommand(ctx, a, rest)
	case "tui":
		return tuiCommand(ctx, a, rest)
	case "templates":
		return templatesCommand(ctx, a, os.Stdout, rest)
	case "tasks":
		return tasksCommand(ctx, a, os.Stdout, rest)
	case "settings":
		return settingsCommand(ctx, a, os.Stdout, rest)
	case "version":
		fmt.Printf("cadence v%s (%s)\n", Version, RepoURL)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `usage: cadence [-prod] <command> [args]

commands:
  tui [-template ID]                 interactive timer
  run -template ID                   headless run of a saved template
  run [-pomodoro 20 -short-break 5 -long-break 15 -intervals 4 -rounds 1]
  templates list|show ID|import FILE|export [ID...]|rm ID
  tasks add TITLE|list|toggle ID|rm ID
  settings show|set KEY=VALUE...
  version
`)
}
