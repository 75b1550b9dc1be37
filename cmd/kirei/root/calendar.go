package root

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/planner"
	"kireiroutine/internal/schedule"
	"kireiroutine/internal/ui"
)

// resolveDate accepts "today" or a YYYY-MM-DD key.
func resolveDate(p *planner.Planner, s string) (string, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return p.Today(), nil
	}
	key, ok := datekey.Normalize(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", datekey.ErrInvalid, s)
	}
	return key, nil
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(what + " required")
		}
		return nil
	}
}

func printEntries(w io.Writer, entries []schedule.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("  nothing planned"))
		return
	}
	for _, e := range entries {
		if !e.Known {
			fmt.Fprintf(w, "  %s %s\n", e.Task.ID, ui.Muted.Render("(unknown task)"))
			continue
		}
		fmt.Fprintf(w, "  %-22s %s\n", e.Task.ID, ui.FrequencyStyle(e.Frequency).Render(e.Task.Text))
	}
}

func newAgendaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Show tasks planned for the next 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			for _, d := range p.Agenda() {
				fmt.Fprintf(w, "%s  %s\n", d.Date, ui.Title.Render(datekey.Human(d.Date)))
				printEntries(w, d.Entries)
			}
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the next planned day for each frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			for _, s := range p.Summary() {
				if !s.Found {
					fmt.Fprintf(w, "%-12s %s\n", s.Frequency.Label(), ui.Muted.Render("not planned"))
					continue
				}
				fmt.Fprintf(w, "%-12s %s (%d tasks)\n", s.Frequency.Label(), s.Date, s.Count)
			}
			return nil
		},
	}
}

func newDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "List the tasks planned on a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			in := ""
			if len(args) == 1 {
				in = args[0]
			}
			date, err := resolveDate(p, in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s\n", date, ui.Title.Render(datekey.Human(date)))
			printEntries(w, p.Day(date))
			return nil
		},
	}
}

func newPlanCmd() *cobra.Command {
	var repeat string

	cmd := &cobra.Command{
		Use:   "plan <date> <frequency|section-id>",
		Short: "Schedule a frequency's tasks or one section from a date",
		Long: "Schedule tasks on <date> and, unless --repeat once, on every later occurrence\n" +
			"up to one year ahead. The repeat type defaults to the frequency's own interval.",
		Args: exactArgs(2, "date and frequency or section id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r schedule.RepeatType
			if repeat != "" {
				parsed, err := schedule.ParseRepeat(repeat)
				if err != nil {
					return err
				}
				r = parsed
			}

			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := resolveDate(p, args[0])
			if err != nil {
				return err
			}
			if f, ferr := catalog.ParseFrequency(args[1]); ferr == nil {
				err = p.PlanFrequency(date, f, r)
			} else {
				err = p.PlanSection(date, args[1], r)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("planned %s from %s", args[1], date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Repeat type (once|weekly|biweekly|monthly|quarterly|semiannual|yearly)")
	return cmd
}

func newBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <frequency> <date>...",
		Short: "Add a frequency's tasks to several days at once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catalog.ParseFrequency(args[0])
			if err != nil {
				return err
			}

			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			p.ToggleBulkMode()
			for _, in := range args[1:] {
				date, err := resolveDate(p, in)
				if err != nil {
					return err
				}
				if !p.TogglePick(date) {
					// a repeated date unpicks; pick it again
					p.TogglePick(date)
				}
			}
			n := p.ApplyBulk(f)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("assigned %s tasks to %d days", f.Label(), n)))
			return nil
		},
	}
}

func newMoveCmd() *cobra.Command {
	var wholeDay bool

	cmd := &cobra.Command{
		Use:   "move [task-id] <from> <to>",
		Short: "Move a task, or with --day every task, to another day",
		Args: func(cmd *cobra.Command, args []string) error {
			if wholeDay && len(args) != 2 {
				return errors.New("from and to dates required")
			}
			if !wholeDay && len(args) != 3 {
				return errors.New("task id, from and to dates required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			dates := args
			if !wholeDay {
				dates = args[1:]
			}
			from, err := resolveDate(p, dates[0])
			if err != nil {
				return err
			}
			to, err := resolveDate(p, dates[1])
			if err != nil {
				return err
			}

			if wholeDay {
				p.RescheduleDay(from, to)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("moved %s to %s", from, to)))
				return nil
			}
			if !p.Calendar().Has(from, args[0]) {
				return fmt.Errorf("%s is not planned on %s", args[0], from)
			}
			p.Reschedule(args[0], from, to)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("moved %s to %s", args[0], to)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&wholeDay, "day", false, "Move every task planned on <from>")
	return cmd
}

func newClearCmd() *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "clear <date>",
		Short: "Remove every task, or one with --task, from a day",
		Args:  exactArgs(1, "date"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := resolveDate(p, args[0])
			if err != nil {
				return err
			}
			if taskID != "" {
				p.RemoveTask(date, taskID)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("removed %s from %s", taskID, date)))
				return nil
			}
			p.ClearDay(date)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("cleared "+date))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Remove only this task")
	return cmd
}
