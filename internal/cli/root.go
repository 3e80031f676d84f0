package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/waypoint/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Planner service.PlannerService
	History service.HistoryService
	Review  service.ReviewService
	Export  service.ExportService
	Punch   service.PunchService

	// GanttWidth is the default timeline width in columns.
	GanttWidth int
	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Now is the review and gantt clock. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "waypoint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "waypoint",
		Short:         "Project, phase and task tracker with dependency scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read before the command tree runs; see ConfigFlag.
	root.PersistentFlags().String("config", "", "Config file (default $WAYPOINT_HOME/config.yaml)")

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newTaskCmd(app),
		newSubtaskCmd(app),
		newItemCmd(app),
		newDepCmd(app),
		newUndoCmd(app),
		newRedoCmd(app),
		newReviewCmd(app),
		newGanttCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newPunchCmd(app),
	)

	return root
}

// ConfigFlag extracts --config from raw arguments so the config file can be
// loaded before services (and therefore the command tree) are built. Every
// other flag is ignored.
func ConfigFlag(args []string) string {
	fs := pflag.NewFlagSet("waypoint", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}
