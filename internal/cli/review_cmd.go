package cli

import (
	"fmt"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newReviewCmd(a *App) *cobra.Command {
	var plain, all bool
	var project string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Portfolio review: progress, risk, overdue and due-soon work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.ReviewRequest{IncludeExcluded: all}
			if project != "" {
				id, err := resolveProjectID(cmd.Context(), a, project)
				if err != nil {
					return err
				}
				req.ProjectID = id
			}

			if !plain && a.interactive() {
				m := newReviewModel(cmd.Context(), a, req)
				_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
				return err
			}

			req.Now = a.now()
			resp, err := a.Review.Review(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReview(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print static text instead of the interactive view")
	cmd.Flags().BoolVar(&all, "all", false, "Also list projects excluded from statistics")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Review a single project")

	return cmd
}

func newGanttCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "gantt [PROJECT]",
		Short: "Draw a text Gantt chart of effective dates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = app.GanttWidth
			}

			var projects []*domain.Project
			if len(args) == 1 {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				projects = append(projects, p)
			} else {
				forest, err := app.Planner.Forest(cmd.Context())
				if err != nil {
					return err
				}
				projects = forest.Projects
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}
			for _, p := range projects {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGantt(p, width, app.now()))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 60, "Timeline width in columns")

	return cmd
}
