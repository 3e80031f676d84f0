package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/spf13/cobra"
)

func newUndoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryStep(cmd, a, "Undid", a.History.Undo)
		},
	}
}

func newRedoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Re-apply the most recently undone edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryStep(cmd, a, "Redid", a.History.Redo)
		},
	}
}

func runHistoryStep(cmd *cobra.Command, a *App, verb string, step func(context.Context) (string, error)) error {
	label, err := step(cmd.Context())
	if err != nil {
		return err
	}
	depth, err := a.History.Depth(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, label, historyHint(depth))
	return nil
}

func historyHint(d app.HistoryDepth) string {
	return fmt.Sprintf("(%d undo, %d redo left)", d.Undo, d.Redo)
}
