// Package planner drives the calendar screen: day selection, bulk
// assignment, rescheduling and drag-and-drop, plus the derived views the
// screen renders. It holds the current calendar in memory and writes every
// change through the stores.
//
// The current time is injected, so nothing here reads the wall clock.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/logger"
	"kireiroutine/internal/meta"
	"kireiroutine/internal/progress"
	"kireiroutine/internal/schedule"
	"kireiroutine/internal/storage"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrNoDrag         = errors.New("no task is being dragged")
)

type Cell struct {
	Date     string
	Day      int
	Count    int
	Dominant catalog.Frequency
	HasTasks bool
	Today    bool
	Selected bool
	Picked   bool
}

type drag struct {
	taskID string
	from   string
}

type Planner struct {
	cat      *catalog.Catalog
	cal      *schedule.Store
	meta     *meta.Store
	progress *progress.Store
	now      func() time.Time

	calendar schedule.Map
	selected string
	bulk     bool
	picked   map[string]bool
	dragging *drag
}

// New wires the stores onto kv and loads the calendar. A nil clock means
// time.Now.
func New(cat *catalog.Catalog, kv storage.KV, now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	p := &Planner{
		cat:      cat,
		cal:      schedule.NewStore(kv),
		meta:     meta.NewStore(kv, now().Location()),
		progress: progress.NewStore(kv),
		now:      now,
		picked:   make(map[string]bool),
	}
	p.calendar = p.cal.Load()
	p.selected = p.Today()
	return p
}

func (p *Planner) Catalog() *catalog.Catalog { return p.cat }

func (p *Planner) Today() string {
	return datekey.Today(p.now())
}

// Reload re-reads the calendar from storage, dropping in-memory state that
// another writer may have overwritten.
func (p *Planner) Reload() {
	p.calendar = p.cal.Load()
}

// Calendar returns a copy of the current calendar.
func (p *Planner) Calendar() schedule.Map {
	return p.calendar.Clone()
}

func (p *Planner) Selected() string { return p.selected }

// Select moves the selection. Invalid keys are ignored.
func (p *Planner) Select(date string) bool {
	key, ok := datekey.Normalize(date)
	if !ok {
		return false
	}
	p.selected = key
	return true
}

// Shift moves the selection by n days.
func (p *Planner) Shift(n int) {
	next, err := datekey.AddDays(p.selected, n)
	if err != nil {
		return
	}
	p.selected = next
}

// ShiftMonth moves the selection by n months, clamping the day.
func (p *Planner) ShiftMonth(n int) {
	t, err := datekey.Parse(p.selected)
	if err != nil {
		return
	}
	p.selected = datekey.Format(datekey.MonthDay(t.Year(), t.Month()+time.Month(n), t.Day()))
}

func (p *Planner) Day(date string) []schedule.Entry {
	return schedule.Resolve(p.cat, p.calendar[date])
}

func (p *Planner) Agenda() []schedule.Day {
	return schedule.Upcoming(p.calendar, p.cat, p.Today(), schedule.AgendaSize)
}

func (p *Planner) Summary() []schedule.Summary {
	return schedule.NextOccurrences(p.calendar, p.cat, p.Today())
}

// Month lays out every day of the month for the calendar grid.
func (p *Planner) Month(year int, month time.Month) []Cell {
	today := p.Today()
	n := datekey.DaysIn(year, month)
	cells := make([]Cell, 0, n)
	for d := 1; d <= n; d++ {
		date := datekey.Format(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		ids := p.calendar[date]
		c := Cell{
			Date:     date,
			Day:      d,
			Count:    len(ids),
			HasTasks: len(ids) > 0,
			Today:    date == today,
			Selected: date == p.selected,
			Picked:   p.picked[date],
		}
		c.Dominant, _ = schedule.Dominant(p.cat, ids)
		cells = append(cells, c)
	}
	return cells
}

// Plan runs the recurrence engine from base for ids.
func (p *Planner) Plan(base string, r schedule.RepeatType, ids []string) error {
	next, err := p.cal.Apply(p.calendar, base, r, ids)
	if err != nil {
		logger.Warn("plan: %v", err)
		return err
	}
	p.calendar = next
	return nil
}

// PlanFrequency schedules every task of f from base, repeating at f's own
// interval unless r overrides it.
func (p *Planner) PlanFrequency(base string, f catalog.Frequency, r schedule.RepeatType) error {
	if r == "" {
		r = schedule.RepeatFor(f)
	}
	return p.Plan(base, r, p.cat.TaskIDs(f))
}

// PlanSection schedules one section's tasks from base.
func (p *Planner) PlanSection(base, sectionID string, r schedule.RepeatType) error {
	sec, f, ok := p.cat.Section(sectionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	if r == "" {
		r = schedule.RepeatFor(f)
	}
	ids := make([]string, 0, len(sec.Tasks))
	for _, t := range sec.Tasks {
		ids = append(ids, t.ID)
	}
	return p.Plan(base, r, ids)
}

func (p *Planner) ClearDay(date string) {
	p.calendar = p.cal.ClearDay(p.calendar, date)
}

// RemoveTask takes one task off a day.
func (p *Planner) RemoveTask(date, taskID string) {
	p.calendar = p.cal.Mutate(p.calendar, func(d schedule.Map) { d.Remove(date, taskID) })
}

// Reschedule moves one task. It reports false when to is not a valid date.
func (p *Planner) Reschedule(taskID, from, to string) bool {
	if _, ok := datekey.Normalize(to); !ok {
		return false
	}
	p.calendar = p.cal.Move(p.calendar, taskID, from, to)
	return true
}

// RescheduleDay moves every task on from to to.
func (p *Planner) RescheduleDay(from, to string) bool {
	if _, ok := datekey.Normalize(to); !ok {
		return false
	}
	p.calendar = p.cal.MoveMany(p.calendar, from, p.calendar[from], to)
	return true
}

func (p *Planner) BulkMode() bool { return p.bulk }

// ToggleBulkMode switches bulk picking on or off. Leaving bulk mode drops
// any picked dates.
func (p *Planner) ToggleBulkMode() bool {
	p.bulk = !p.bulk
	if !p.bulk {
		p.picked = make(map[string]bool)
	}
	return p.bulk
}

// TogglePick adds or removes date from the bulk selection.
func (p *Planner) TogglePick(date string) bool {
	if !p.bulk {
		return false
	}
	key, ok := datekey.Normalize(date)
	if !ok {
		return false
	}
	if p.picked[key] {
		delete(p.picked, key)
		return false
	}
	p.picked[key] = true
	return true
}

func (p *Planner) Picked() []string {
	out := make([]string, 0, len(p.picked))
	for d := range p.picked {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ApplyBulk merges f's tasks into every picked date, then leaves bulk
// mode. It returns how many dates were written.
func (p *Planner) ApplyBulk(f catalog.Frequency) int {
	dates := p.Picked()
	if len(dates) == 0 {
		return 0
	}
	p.calendar = p.cal.BulkAssign(p.calendar, p.cat, f, dates)
	p.bulk = false
	p.picked = make(map[string]bool)
	return len(dates)
}

// StartDrag picks up a task planned on from.
func (p *Planner) StartDrag(from, taskID string) bool {
	if !p.calendar.Has(from, taskID) {
		return false
	}
	p.dragging = &drag{taskID: taskID, from: from}
	return true
}

// Dragging returns the task being dragged, if any.
func (p *Planner) Dragging() (taskID, from string, ok bool) {
	if p.dragging == nil {
		return "", "", false
	}
	return p.dragging.taskID, p.dragging.from, true
}

func (p *Planner) CancelDrag() { p.dragging = nil }

// Drop moves the dragged task onto to.
func (p *Planner) Drop(to string) error {
	if p.dragging == nil {
		return ErrNoDrag
	}
	d := p.dragging
	if !p.Reschedule(d.taskID, d.from, to) {
		return fmt.Errorf("drop %s: invalid target %q", d.taskID, to)
	}
	p.dragging = nil
	return nil
}

// Sections.

func (p *Planner) SectionMeta(sectionID string) meta.Meta {
	return p.meta.Get(sectionID)
}

func (p *Planner) DueSections() []catalog.Section {
	var out []catalog.Section
	for _, id := range meta.Due(p.meta.Load(), p.cat, p.Today()) {
		sec, _, _ := p.cat.Section(id)
		out = append(out, sec)
	}
	return out
}

func (p *Planner) MarkDone(sectionID string) (meta.Meta, error) {
	_, f, ok := p.cat.Section(sectionID)
	if !ok {
		return meta.Meta{}, fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	return p.meta.MarkDone(sectionID, f, p.Today())
}

func (p *Planner) SetNextDue(sectionID, input string) (meta.Meta, bool) {
	return p.meta.SetNextDue(sectionID, input)
}

func (p *Planner) SetNote(sectionID, note string) meta.Meta {
	return p.meta.SetNote(sectionID, note)
}

func (p *Planner) ToggleStep(sectionID string, n int) meta.Meta {
	return p.meta.ToggleStep(sectionID, n)
}

func (p *Planner) ToggleTask(taskID string) bool {
	return p.progress.Toggle(taskID)
}

func (p *Planner) SectionProgress(sectionID string) (done, total int) {
	sec, _, ok := p.cat.Section(sectionID)
	if !ok {
		return 0, 0
	}
	return progress.SectionCompletion(p.progress.Load(), sec)
}

// ResetSection clears the section's checklist and its metadata.
func (p *Planner) ResetSection(sectionID string) error {
	sec, _, ok := p.cat.Section(sectionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	p.progress.ResetSection(sec)
	p.meta.Reset(sectionID)
	return nil
}

// ResetAll clears every checklist tick and all section metadata. The
// calendar is left alone.
func (p *Planner) ResetAll() {
	p.progress.ResetAll()
	p.meta.ResetAll()
}
