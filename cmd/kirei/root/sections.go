package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/planner"
	"kireiroutine/internal/ui"
)

func printSection(w io.Writer, p *planner.Planner, sec catalog.Section) {
	m := p.SectionMeta(sec.ID)
	done, total := p.SectionProgress(sec.ID)
	line := fmt.Sprintf("%-22s %-28s %d/%d", sec.ID, sec.AreaName, done, total)
	if m.LastDoneDate != "" {
		line += "  last " + m.LastDoneDate
	}
	if m.NextDueDate != "" {
		line += "  next " + m.NextDueDate
	}
	fmt.Fprintln(w, line)
	if m.Note != "" {
		fmt.Fprintln(w, ui.Muted.Render("    note: "+m.Note))
	}
}

func newSectionsCmd() *cobra.Command {
	var dueOnly bool

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List sections with progress and due dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			if dueOnly {
				due := p.DueSections()
				if len(due) == 0 {
					fmt.Fprintln(w, ui.Muted.Render("nothing due today"))
				}
				for _, sec := range due {
					printSection(w, p, sec)
				}
				return nil
			}
			for _, c := range p.Catalog().Categories() {
				fmt.Fprintln(w, ui.FrequencyStyle(c.Frequency).Render(c.Label))
				for _, sec := range c.Sections {
					printSection(w, p, sec)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dueOnly, "due", false, "Only sections due today")
	return cmd
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <section-id>",
		Short: "Record a section as done today and set its next due date",
		Args:  exactArgs(1, "section id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := p.MarkDone(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s done %s, next due %s", args[0], m.LastDoneDate, m.NextDueDate)))
			return nil
		},
	}
}

func newDueDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due-date <section-id> <date>",
		Short: "Set a section's next due date",
		Args:  exactArgs(2, "section id and date"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			if _, _, ok := p.Catalog().Section(args[0]); !ok {
				return fmt.Errorf("%w: %q", planner.ErrUnknownSection, args[0])
			}
			m, ok := p.SetNextDue(args[0], args[1])
			if !ok {
				return fmt.Errorf("invalid date %q", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s next due %s", args[0], m.NextDueDate)))
			return nil
		},
	}
}

func newNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <section-id> [text...]",
		Short: "Set a section's note; no text clears it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			if _, _, ok := p.Catalog().Section(args[0]); !ok {
				return fmt.Errorf("%w: %q", planner.ErrUnknownSection, args[0])
			}
			p.SetNote(args[0], strings.Join(args[1:], " "))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("note saved"))
			return nil
		},
	}
}

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <section-id> <n>",
		Short: "Toggle manual step n of a section",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("section id and step number required")
			}
			if n, err := strconv.Atoi(args[1]); err != nil || n < 1 {
				return errors.New("step must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[1])

			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			manual := p.Catalog().Manual(args[0])
			if n > len(manual) {
				return fmt.Errorf("%s has %d manual steps", args[0], len(manual))
			}
			m := p.ToggleStep(args[0], n)
			state := "open"
			if m.HasStep(n) {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "step %d (%s): %s\n", n, manual[n-1], state)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <task-id>",
		Short: "Toggle a task's checklist tick",
		Args:  exactArgs(1, "task id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			task, ok := p.Catalog().Resolve(args[0])
			if !ok {
				return fmt.Errorf("unknown task %q", args[0])
			}
			state := "open"
			if p.ToggleTask(task.ID) {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", task.Text, state)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset [section-id]",
		Short: "Clear a section's checklist and tracking, or everything with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) != 0 {
				return errors.New("--all takes no section id")
			}
			if !all && len(args) != 1 {
				return errors.New("section id required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, cleanup, err := openPlanner()
			if err != nil {
				return err
			}
			defer cleanup()

			if all {
				p.ResetAll()
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("all progress reset"))
				return nil
			}
			if err := p.ResetSection(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(args[0]+" reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Reset every section")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the task catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, c := range cat.Categories() {
				fmt.Fprintf(w, "%s  %s\n", ui.FrequencyStyle(c.Frequency).Render(c.Label), ui.Muted.Render(c.Description))
				for _, sec := range c.Sections {
					fmt.Fprintf(w, "  [%d] %s (%s)\n", sec.Step, sec.AreaName, sec.ID)
					if len(sec.Tools) > 0 {
						fmt.Fprintln(w, ui.Muted.Render("      tools: "+strings.Join(sec.Tools, ", ")))
					}
					for _, t := range sec.Tasks {
						fmt.Fprintf(w, "      - %s  %s\n", t.ID, t.Text)
					}
					if sec.WaitTime > 0 {
						fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("      wait %d min: %s", sec.WaitTime, sec.WaitAction)))
					}
					if sec.ParallelTip != "" {
						fmt.Fprintln(w, ui.Muted.Render("      tip: "+sec.ParallelTip))
					}
					for i, step := range cat.Manual(sec.ID) {
						fmt.Fprintf(w, "      %d. %s\n", i+1, step)
					}
				}
			}
			return nil
		},
	}
}
