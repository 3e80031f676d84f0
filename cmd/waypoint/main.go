package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/waypoint/internal/cli"
	"github.com/alexanderramin/waypoint/internal/config"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config must be read before services exist, so --config is picked out
	// of the raw arguments ahead of cobra.
	v := viper.New()
	if err := config.Init(v, cli.ConfigFlag(os.Args[1:])); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.UseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	ws := service.Workspace{
		Name:         cfg.Workspace,
		HistoryLimit: cfg.History.Limit,
		IDs:          domain.NewIDGenerator(),
	}

	app := &cli.App{
		Planner:    service.NewPlannerService(uow, ws, observer),
		History:    service.NewHistoryService(uow, ws, observer),
		Review:     service.NewReviewService(uow, ws, cfg.Review.DueSoonWeekdays, observer),
		Export:     service.NewExportService(uow, ws, observer),
		Punch:      service.NewPunchService(uow, ws, observer),
		GanttWidth: cfg.Gantt.Width,
	}

	// Detect interactive terminal for the review view and confirmations.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
