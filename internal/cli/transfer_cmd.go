package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the forest as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var write func(w io.Writer) error
			switch format {
			case "json":
				write = func(w io.Writer) error { return a.Export.ExportJSON(cmd.Context(), w) }
			case "csv":
				write = func(w io.Writer) error { return a.Export.ExportCSV(cmd.Context(), w) }
			default:
				return fmt.Errorf("unknown format %q (want json or csv)", format)
			}

			if out == "" || out == "-" {
				return write(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			if err := write(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", format, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an export document (replaces everything) or a plan (adds a project)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Export.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), importSummary(res))
			return nil
		},
	}
}

func importSummary(res *app.ImportResult) string {
	counts := fmt.Sprintf("%d phases, %d tasks, %d subtasks, %d dependencies",
		res.Phases, res.Tasks, res.Subtasks, res.Dependencies)
	if res.Mode == app.ImportAppend && res.Project != nil {
		return fmt.Sprintf("Added project %s (%d): %s", res.Project.Name, res.Project.ID, counts)
	}
	return fmt.Sprintf("Replaced workspace with %d projects: %s", res.Projects, counts)
}
