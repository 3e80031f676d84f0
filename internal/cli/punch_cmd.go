package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/punchlist"
	"github.com/spf13/cobra"
)

func newPunchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punch",
		Short: "Free-form checklist that can be handed off into tasks",
	}

	cmd.AddCommand(
		newPunchShowCmd(app),
		newPunchAddCmd(app),
		newPunchSetCmd(app),
		newPunchHandoffCmd(app),
	)

	return cmd
}

func newPunchShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the punch list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := app.Punch.Get(cmd.Context())
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			if strings.TrimSpace(body) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Punch list is empty.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatPunchList(punchlist.Parse(body)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the stored text unchanged")

	return cmd
}

func newPunchAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT",
		Short: "Append an open item (e.g. \"call vendor @sam due:2025-03-01\")",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			if err := app.Punch.Append(cmd.Context(), line); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added to punch list")
			return nil
		},
	}
}

func newPunchSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set FILE",
		Short: "Replace the punch list with a file's contents (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading punch list: %w", err)
			}
			if err := app.Punch.Replace(cmd.Context(), string(data)); err != nil {
				return err
			}
			open, done := punchlist.Parse(string(data)).Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Punch list replaced (%d open, %d done)\n", open, done)
			return nil
		},
	}
}

func newPunchHandoffCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "handoff TARGET",
		Short: "Turn open punch items into tasks under a project or phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseID(args[0])
			if err != nil {
				if target, err = resolveProjectID(cmd.Context(), app, args[0]); err != nil {
					return err
				}
			}
			res, err := app.Punch.Handoff(cmd.Context(), target)
			if err != nil {
				return err
			}
			if res.Tasks == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing open to hand off.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Handed off %d tasks and %d subtasks to %s\n",
				res.Tasks, res.Subtasks, res.TargetName)
			return nil
		},
	}
}

// formatPunchList renders checklist lines with colored boxes.
func formatPunchList(doc *punchlist.Document) string {
	var b strings.Builder
	for _, line := range doc.Lines {
		indent := strings.Repeat("  ", line.Indent)
		switch line.Kind {
		case punchlist.LineHeading:
			b.WriteString(formatter.Header(line.Text) + "\n")
		case punchlist.LineCheck:
			box := formatter.StyleYellow.Render("☐")
			text := line.Text
			if line.Checked {
				box = formatter.StyleGreen.Render("☑")
				text = formatter.Dim(text)
			}
			b.WriteString(indent + box + " " + text + "\n")
		case punchlist.LineBullet:
			b.WriteString(indent + formatter.Dim("•") + " " + line.Text + "\n")
		default:
			b.WriteString(line.Raw + "\n")
		}
	}
	open, done := doc.Stats()
	b.WriteString(formatter.Dim(fmt.Sprintf("\n%d open · %d done", open, done)))
	return formatter.RenderBox("Punch List", b.String())
}
