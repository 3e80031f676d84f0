package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dep",
		Aliases: []string{"dependency"},
		Short:   "Manage finish-to-start dependencies",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add SUCCESSOR PREDECESSOR",
			Short: "Make SUCCESSOR start when PREDECESSOR ends",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				if err := app.Planner.Link(cmd.Context(), ids[0], ids[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d now follows %d\n", ids[0], ids[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm SUCCESSOR",
			Aliases: []string{"remove"},
			Short:   "Drop SUCCESSOR's predecessor; its current dates are kept",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := app.Planner.Unlink(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d no longer has a predecessor\n", id)
				return nil
			},
		},
	)

	return cmd
}
