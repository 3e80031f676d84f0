package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/spf13/cobra"
)

// itemFlags are the creation flags shared by phase, task and subtask add.
type itemFlags struct {
	start, end string
	after      int64
	locked     bool
	done       bool
	delegate   string
	tags       []string
}

func (f *itemFlags) register(cmd *cobra.Command, kind domain.ItemKind) {
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&f.after, "after", 0, "Predecessor id")
	cmd.Flags().BoolVar(&f.locked, "locked", false, "Pin the dates against propagation")
	switch kind {
	case domain.KindTask:
		cmd.Flags().StringVar(&f.delegate, "delegate", "", "Person the task is delegated to")
		cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
	case domain.KindPhase:
		cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
	case domain.KindSubtask:
		cmd.Flags().BoolVar(&f.done, "done", false, "Create the subtask completed")
	}
}

func (f *itemFlags) draft(name string) (app.ItemDraft, error) {
	start, err := parseDateFlag("start", f.start)
	if err != nil {
		return app.ItemDraft{}, err
	}
	end, err := parseDateFlag("end", f.end)
	if err != nil {
		return app.ItemDraft{}, err
	}
	pred, err := optionalID("after", f.after)
	if err != nil {
		return app.ItemDraft{}, err
	}
	return app.ItemDraft{
		Name:          name,
		Start:         start,
		End:           end,
		Locked:        f.locked,
		Completed:     f.done,
		Delegate:      f.delegate,
		Tags:          f.tags,
		PredecessorID: pred,
	}, nil
}

func newPhaseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage phases",
	}

	var flags itemFlags
	add := &cobra.Command{
		Use:   "add PROJECT NAME",
		Short: "Add a phase to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			draft, err := flags.draft(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			id, err := a.Planner.AddPhase(cmd.Context(), projectID, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s (%d)\n", draft.Name, id)
			return nil
		},
	}
	flags.register(add, domain.KindPhase)

	cmd.AddCommand(add)
	return cmd
}

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	var flags itemFlags
	add := &cobra.Command{
		Use:   "add PARENT NAME",
		Short: "Add a task to a phase, or a general task to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, err := parseID(args[0])
			if err != nil {
				if parentID, err = resolveProjectID(cmd.Context(), a, args[0]); err != nil {
					return err
				}
			}
			draft, err := flags.draft(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			id, err := a.Planner.AddTask(cmd.Context(), parentID, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%d)\n", draft.Name, id)
			return nil
		},
	}
	flags.register(add, domain.KindTask)

	cmd.AddCommand(add)
	return cmd
}

func newSubtaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}

	var flags itemFlags
	add := &cobra.Command{
		Use:   "add TASK NAME",
		Short: "Add a subtask to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}
			draft, err := flags.draft(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			id, err := a.Planner.AddSubtask(cmd.Context(), taskID, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added subtask %s (%d)\n", draft.Name, id)
			return nil
		},
	}
	flags.register(add, domain.KindSubtask)

	cmd.AddCommand(add)
	return cmd
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Edit any project, phase, task or subtask by id",
	}

	cmd.AddCommand(
		newItemRenameCmd(app),
		newItemDatesCmd(app),
		newItemDoneCmd(app, "done", true),
		newItemDoneCmd(app, "undone", false),
		newItemLockCmd(app, "lock", true),
		newItemLockCmd(app, "unlock", false),
		newItemRemoveCmd(app),
		newItemTagCmd(app, "tag"),
		newItemTagCmd(app, "untag"),
		newItemDelegateCmd(app),
		newItemCommentCmd(app),
	)

	return cmd
}

func newItemRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := app.Planner.Rename(cmd.Context(), id, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %d to %s\n", id, name)
			return nil
		},
	}
}

func newItemDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "dates ID",
		Short: "Set planned dates; pass - to clear one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("start") && !cmd.Flags().Changed("end") {
				return fmt.Errorf("nothing to change: pass --start and/or --end")
			}

			forest, err := app.Planner.Forest(cmd.Context())
			if err != nil {
				return err
			}
			curStart, curEnd, err := plannedDates(domain.NewIndex(forest), id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("start") {
				if curStart, err = parseDateFlag("start", start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if curEnd, err = parseDateFlag("end", end); err != nil {
					return err
				}
			}

			if err := app.Planner.SetDates(cmd.Context(), id, curStart, curEnd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dates of %d set to %s → %s\n",
				id, domain.FormatDate(curStart), domain.FormatDate(curEnd))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, - to clear)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, - to clear)")

	return cmd
}

func newItemDoneCmd(app *App, use string, done bool) *cobra.Command {
	short := "Mark a task or subtask complete"
	if !done {
		short = "Mark a task or subtask incomplete"
	}
	return &cobra.Command{
		Use:   use + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := app.Planner.SetCompleted(cmd.Context(), id, done); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %d %s\n", id, use)
			}
			return nil
		},
	}
}

func newItemLockCmd(app *App, use string, locked bool) *cobra.Command {
	short := "Pin an item's dates against propagation"
	if !locked {
		short = "Let propagation move an item again"
	}
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SetLocked(cmd.Context(), id, locked); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", pastTense(use), id)
			return nil
		},
	}
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete an item and everything beneath it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				forest, err := app.Planner.Forest(cmd.Context())
				if err != nil {
					return err
				}
				idx := domain.NewIndex(forest)
				if _, ok := idx.KindOf(id); !ok {
					return fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
				}
				n := len(domain.SubtreeIDs(idx, id))
				ok, err := confirm(fmt.Sprintf("Delete %q and %d item(s) beneath it?", idx.Name(id), n-1))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Planner.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newItemTagCmd(app *App, use string) *cobra.Command {
	apply := app.Planner.Tag
	short := "Add tags to an item"
	if use == "untag" {
		apply = app.Planner.Untag
		short = "Remove tags from an item"
	}
	return &cobra.Command{
		Use:   use + " ID TAG...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			for _, tag := range args[1:] {
				if err := apply(cmd.Context(), id, tag); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s\n", pastTense(use), id, strings.Join(args[1:], ", "))
			return nil
		},
	}
}

func newItemDelegateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delegate ID WHO",
		Short: "Delegate a task; pass - to clear",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			who := args[1]
			if who == "-" {
				who = ""
			}
			if err := app.Planner.Delegate(cmd.Context(), id, who); err != nil {
				return err
			}
			if who == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared delegate of %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Delegated %d to @%s\n", id, strings.TrimPrefix(who, "@"))
			}
			return nil
		},
	}
}

func newItemCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Attach a comment to an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.Planner.AddComment(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment %s added to %d\n", c.ID[:8], id)
			return nil
		},
	}
}

// plannedDates returns the user-entered dates of any item.
func plannedDates(idx *domain.Index, id domain.ItemID) (start, end *time.Time, err error) {
	if p, ok := idx.Project(id); ok {
		return p.StartDate, p.EndDate, nil
	}
	it, ok := idx.Item(id)
	if !ok {
		return nil, nil, fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
	}
	s := it.Sched()
	return s.StartDate, s.EndDate, nil
}

func pastTense(verb string) string {
	switch verb {
	case "lock":
		return "Locked"
	case "unlock":
		return "Unlocked"
	case "tag":
		return "Tagged"
	case "untag":
		return "Untagged"
	}
	return verb
}
