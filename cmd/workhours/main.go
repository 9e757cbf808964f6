package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/workhours/internal/cli"
	"github.com/alexanderramin/workhours/internal/config"
	"github.com/alexanderramin/workhours/internal/db"
	"github.com/alexanderramin/workhours/internal/logging"
	"github.com/alexanderramin/workhours/internal/repository"
	"github.com/alexanderramin/workhours/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for forms and the stats browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Bootstrap = func(flags *pflag.FlagSet) error {
		configPath, _ := flags.GetString("config")
		cfg, err := config.Load(configPath, flags)
		if err != nil {
			return err
		}

		logger, logCloser, err := logging.New(cfg.Logging, os.Stderr)
		if err != nil {
			return fmt.Errorf("configuring logging: %w", err)
		}
		closers = append(closers, logCloser)
		logger.Debug().
			Str("config_file", cfg.File).
			Str("db_path", cfg.Database.Path).
			Msg("Configuration loaded")

		// Open database
		database, err := db.OpenDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, database)

		// Wire repositories
		sessionRepo := repository.NewSQLiteSessionRepo(database)
		settingRepo := repository.NewSQLiteSettingRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database, db.WithTxLogger(logger))

		// Wire services
		clock := service.RealClock{}
		observer := service.NewLogUseCaseObserver(logger)
		settingsSvc := service.NewSettingsService(settingRepo, logger, observer)

		app.Ledger = service.NewLedgerService(sessionRepo, uow, clock, logger, observer)
		app.Reports = service.NewReportService(sessionRepo, settingsSvc, clock)
		app.Settings = settingsSvc
		app.Clock = clock
		app.Logger = logger
		app.StatusInterval = cfg.Monitor.StatusInterval
		return nil
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
