package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/scheduler"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectPriorityCmd(app),
		newProjectExcludeCmd(app),
	)

	return cmd
}

func newProjectAddCmd(a *App) *cobra.Command {
	var start, end string
	var priority int
	var tags []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			p, err := a.Planner.AddProject(cmd.Context(), app.ProjectDraft{
				Name:     strings.Join(args, " "),
				Start:    startDate,
				End:      endDate,
				Priority: priority,
				Tags:     tags,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%d)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-10 (default 5)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, err := app.Planner.Forest(cmd.Context())
			if err != nil {
				return err
			}

			if len(forest.Projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}

			scheduler.SortProjects(forest.Projects)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(forest.Projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project with its phases, tasks and subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectTree(p))
			return nil
		},
	}
}

func newProjectPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority PROJECT N",
		Short: "Set a project's priority (1-10)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			priority, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid priority %q", args[1])
			}
			if err := app.Planner.SetPriority(cmd.Context(), id, priority); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Priority of %d set to %d\n", id, priority)
			return nil
		},
	}
}

func newProjectExcludeCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "exclude PROJECT",
		Short: "Exclude a project from portfolio statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SetExcludeFromStats(cmd.Context(), id, !off); err != nil {
				return err
			}
			if off {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %d counts towards statistics again\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %d excluded from statistics\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Include the project again")

	return cmd
}
