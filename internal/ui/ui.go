package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/config"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/planner"
	"kireiroutine/internal/schedule"
)

type mode int

const (
	modeCalendar mode = iota
	modePlan
	modeMove
	modeBulkApply
)

type promptState struct {
	fields []string
	values []string
	index  int
}

func newPrompt(fields ...string) *promptState {
	return &promptState{fields: fields, values: make([]string, len(fields))}
}

func (ps promptState) currentLabel() string {
	return ps.fields[ps.index]
}

func (ps promptState) currentValue() string {
	return ps.values[ps.index]
}

func (ps *promptState) setCurrentValue(v string) {
	ps.values[ps.index] = v
}

type Model struct {
	planner      *planner.Planner
	cfg          config.Config
	mode         mode
	input        textinput.Model
	status       string
	taskCursor   int
	confirmClear bool
	showSummary  bool
	prompt       *promptState
}

func New(p *planner.Planner, cfg config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	return Model{
		planner: p,
		cfg:     cfg,
		input:   ti,
		mode:    modeCalendar,
		status:  "Press 'a' to plan tasks on the selected day, 'b' for bulk mode.",
	}
}

func Run(p *planner.Planner, cfg config.Config) error {
	program := tea.NewProgram(New(p, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg.String(), msg)
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		return m.updateCalendar(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) selectedEntries() []schedule.Entry {
	return m.planner.Day(m.planner.Selected())
}

func (m Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	p := m.planner
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Left, "left":
		p.Shift(-1)
		m.taskCursor = 0
	case k.Right, "right":
		p.Shift(1)
		m.taskCursor = 0
	case k.Up, "up":
		p.Shift(-7)
		m.taskCursor = 0
	case k.Down, "down":
		p.Shift(7)
		m.taskCursor = 0
	case k.PrevMonth:
		p.ShiftMonth(-1)
		m.taskCursor = 0
	case k.NextMonth:
		p.ShiftMonth(1)
		m.taskCursor = 0
	case k.Today:
		p.Select(p.Today())
		m.taskCursor = 0
	case k.TaskDown:
		m.taskCursor = clampCursor(m.taskCursor+1, len(m.selectedEntries()))
	case k.TaskUp:
		m.taskCursor = clampCursor(m.taskCursor-1, len(m.selectedEntries()))
	case k.Summary:
		m.showSummary = !m.showSummary
	case k.Bulk:
		if p.ToggleBulkMode() {
			m.status = "Bulk mode: pick days with space, enter to assign a frequency, b to leave"
		} else {
			m.status = "Bulk mode off"
		}
	case k.Pick:
		if !p.BulkMode() {
			return m, nil
		}
		if p.TogglePick(p.Selected()) {
			m.status = "Picked " + p.Selected()
		} else {
			m.status = "Unpicked " + p.Selected()
		}
	case k.Plan:
		m.prompt = newPrompt("frequency or section id", "repeat (once/weekly/biweekly/monthly/quarterly/semiannual/yearly, empty = default)")
		return m.startPrompt(modePlan)
	case k.Move:
		entries := m.selectedEntries()
		if len(entries) == 0 {
			m.status = "No task on this day to move"
			return m, nil
		}
		m.prompt = newPrompt("target date (YYYY-MM-DD)")
		return m.startPrompt(modeMove)
	case k.Drag:
		entries := m.selectedEntries()
		if len(entries) == 0 {
			m.status = "No task on this day to pick up"
			return m, nil
		}
		e := entries[clampCursor(m.taskCursor, len(entries))]
		if p.StartDrag(p.Selected(), e.Task.ID) {
			m.status = fmt.Sprintf("Dragging %q: move to a day and press enter, esc to drop it back", e.Task.Text)
		}
	case k.Confirm:
		if _, _, ok := p.Dragging(); ok {
			if err := p.Drop(p.Selected()); err != nil {
				m.status = fmt.Sprintf("drop failed: %v", err)
				return m, nil
			}
			m.status = "Moved to " + datekey.Human(p.Selected())
			return m, nil
		}
		if p.BulkMode() {
			if len(p.Picked()) == 0 {
				m.status = "Pick at least one day first"
				return m, nil
			}
			m.prompt = newPrompt("frequency to assign")
			return m.startPrompt(modeBulkApply)
		}
	case k.Cancel:
		if _, _, ok := p.Dragging(); ok {
			p.CancelDrag()
			m.status = "Drag cancelled"
		}
	case k.Clear:
		if len(m.selectedEntries()) == 0 {
			m.status = "Nothing planned on this day"
			return m, nil
		}
		m.confirmClear = true
		m.status = fmt.Sprintf("Clear all tasks on %s? y/n", p.Selected())
	}
	return m, nil
}

func (m Model) startPrompt(md mode) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(m.prompt.currentValue())
	m.input.Placeholder = m.prompt.currentLabel()
	m.input.Focus()
	m.status = m.promptHint()
	return m, nil
}

func (m Model) promptHint() string {
	if m.prompt == nil {
		return ""
	}
	return fmt.Sprintf("%s (field %d of %d). Enter to advance, Esc to cancel.",
		m.prompt.currentLabel(), m.prompt.index+1, len(m.prompt.fields))
}

func (m Model) updatePrompt(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.prompt = nil
		m.mode = modeCalendar
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.prompt.setCurrentValue(m.input.Value())
		if m.prompt.index >= len(m.prompt.fields)-1 {
			return m.submitPrompt()
		}
		m.prompt.index++
		m.input.SetValue(m.prompt.currentValue())
		m.input.Placeholder = m.prompt.currentLabel()
		m.status = m.promptHint()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	values := m.prompt.values
	md := m.mode
	m.prompt = nil
	m.mode = modeCalendar
	m.input.Blur()
	m.input.SetValue("")

	p := m.planner
	switch md {
	case modePlan:
		m.status = m.plan(strings.TrimSpace(values[0]), strings.TrimSpace(values[1]))
	case modeMove:
		entries := m.selectedEntries()
		if len(entries) == 0 {
			m.status = "Nothing to move"
			return m, nil
		}
		e := entries[clampCursor(m.taskCursor, len(entries))]
		target := strings.TrimSpace(values[0])
		if !p.Reschedule(e.Task.ID, p.Selected(), target) {
			m.status = fmt.Sprintf("date invalid: %q", target)
			return m, nil
		}
		m.taskCursor = clampCursor(m.taskCursor, len(m.selectedEntries()))
		m.status = fmt.Sprintf("Moved %q to %s", e.Task.Text, target)
	case modeBulkApply:
		f, err := catalog.ParseFrequency(values[0])
		if err != nil {
			m.status = fmt.Sprintf("frequency invalid: %v", err)
			return m, nil
		}
		n := p.ApplyBulk(f)
		m.status = fmt.Sprintf("Assigned %s tasks to %d days", f.Label(), n)
	}
	return m, nil
}

func (m Model) plan(what, repeat string) string {
	p := m.planner
	var r schedule.RepeatType
	if repeat != "" {
		parsed, err := schedule.ParseRepeat(repeat)
		if err != nil {
			return fmt.Sprintf("repeat invalid: %v", err)
		}
		r = parsed
	}
	if f, err := catalog.ParseFrequency(what); err == nil {
		if err := p.PlanFrequency(p.Selected(), f, r); err != nil {
			return fmt.Sprintf("plan failed: %v", err)
		}
		return fmt.Sprintf("Planned %s tasks from %s", f.Label(), p.Selected())
	}
	if err := p.PlanSection(p.Selected(), what, r); err != nil {
		return fmt.Sprintf("plan failed: %v", err)
	}
	return fmt.Sprintf("Planned %s from %s", what, p.Selected())
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Clear cancelled"
		m.confirmClear = false
		return m, nil
	case "y", "Y":
		m.planner.ClearDay(m.planner.Selected())
		m.taskCursor = 0
		m.confirmClear = false
		m.status = "Cleared " + m.planner.Selected()
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("KireiRoutine"))
	b.WriteString("\n\n")
	b.WriteString(m.renderMonth())
	b.WriteString("\n---\n")
	b.WriteString(m.renderDay())
	b.WriteString("\n")
	if m.showSummary {
		b.WriteString(m.renderSummary())
	} else {
		b.WriteString(m.renderAgenda())
	}

	if m.prompt != nil {
		b.WriteString("\n")
		b.WriteString("Field: " + m.prompt.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderMonth() string {
	sel, err := datekey.Parse(m.planner.Selected())
	if err != nil {
		return ""
	}
	cells := m.planner.Month(sel.Year(), sel.Month())

	var b strings.Builder
	header := sel.Format("January 2006")
	if m.planner.BulkMode() {
		header += "  " + pickedStyle.Render(fmt.Sprintf("[bulk: %d picked]", len(m.planner.Picked())))
	}
	if id, from, ok := m.planner.Dragging(); ok {
		header += "  " + warnStyle.Render(fmt.Sprintf("[dragging %s from %s]", id, from))
	}
	b.WriteString(header)
	b.WriteString("\n")

	weekdays := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	offset := int(time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday())
	if m.cfg.WeekStartsMonday {
		weekdays = append(weekdays[1:], weekdays[0])
		offset = (offset + 6) % 7
	}
	for _, w := range weekdays {
		b.WriteString(cellStyle.Render(w))
	}
	b.WriteString("\n")

	col := 0
	for ; col < offset; col++ {
		b.WriteString(cellStyle.Render(""))
	}
	for _, c := range cells {
		b.WriteString(cellStyle.Render(renderCell(c)))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c planner.Cell) string {
	day := fmt.Sprintf("%2d", c.Day)
	if c.Today {
		day = todayStyle.Render(day)
	}
	if c.Selected {
		day = selectedStyle.Render(day)
	}
	badge := "  "
	if c.HasTasks {
		badge = FrequencyStyle(c.Dominant).Render(fmt.Sprintf("%d", c.Count))
		if c.Count < 10 {
			badge = "•" + badge
		}
	}
	mark := " "
	if c.Picked {
		mark = pickedStyle.Render("*")
	}
	return day + badge + mark
}

func (m Model) renderDay() string {
	date := m.planner.Selected()
	entries := m.selectedEntries()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s)\n", datekey.Human(date), date))
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("  nothing planned"))
		b.WriteString("\n")
		return b.String()
	}
	for i, e := range entries {
		cursor := " "
		if i == clampCursor(m.taskCursor, len(entries)) {
			cursor = ">"
		}
		label := e.Task.Text
		if e.Known {
			label = FrequencyStyle(e.Frequency).Render(label)
		} else {
			label = mutedStyle.Render(label + " (unknown)")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, label))
	}
	return b.String()
}

func (m Model) renderAgenda() string {
	var b strings.Builder
	b.WriteString("Next 7 days\n")
	for _, d := range m.planner.Agenda() {
		if len(d.Entries) == 0 {
			continue
		}
		labels := make([]string, 0, len(d.Entries))
		for _, e := range d.Entries {
			labels = append(labels, e.Task.Text)
		}
		b.WriteString(fmt.Sprintf("  %-11s %s\n", datekey.Human(d.Date), strings.Join(labels, ", ")))
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString("Next occurrence per frequency\n")
	for _, s := range m.planner.Summary() {
		name := FrequencyStyle(s.Frequency).Render(fmt.Sprintf("%-12s", s.Frequency.Label()))
		if !s.Found {
			b.WriteString(fmt.Sprintf("  %s %s\n", name, mutedStyle.Render("not planned")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s (%d tasks)\n", name, datekey.Human(s.Date), s.Count))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s%s%s%s move • %s/%s month • %s today • %s/%s task • %s plan • %s bulk • %q pick • %s move task • %s drag • %s clear • %s summary • %s quit",
		k.Left, k.Down, k.Up, k.Right, k.PrevMonth, k.NextMonth, k.Today, k.TaskDown, k.TaskUp,
		k.Plan, k.Bulk, k.Pick, k.Move, k.Drag, k.Clear, k.Summary, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
