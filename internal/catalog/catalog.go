// Package catalog holds the read-only cleaning task catalog: six frequency
// categories, each with ordered sections, each section with its tasks.
// A Catalog is built once and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Frequency string

const (
	Weekly     Frequency = "weekly"
	BiWeekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	SemiAnnual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

// Frequencies lists every frequency in priority order. A calendar day with
// tasks of several frequencies is coloured by the first one in this list.
var Frequencies = []Frequency{Weekly, BiWeekly, Monthly, Quarterly, SemiAnnual, Annual}

var (
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrDuplicateTask    = errors.New("duplicate task id")
	ErrDuplicateSection = errors.New("duplicate section id")
)

func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Quarterly, SemiAnnual, Annual:
		return true
	default:
		return false
	}
}

func (f Frequency) Label() string {
	switch f {
	case Weekly:
		return "Weekly"
	case BiWeekly:
		return "Bi-weekly"
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	case SemiAnnual:
		return "Semi-annual"
	case Annual:
		return "Annual"
	default:
		return string(f)
	}
}

func ParseFrequency(input string) (Frequency, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "bi-weekly":
		s = string(BiWeekly)
	case "semi-annual":
		s = string(SemiAnnual)
	case "yearly":
		s = string(Annual)
	}
	f := Frequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, input)
	}
	return f, nil
}

type Task struct {
	ID   string
	Text string
}

type Section struct {
	ID          string
	AreaName    string
	Tasks       []Task
	Tools       []string
	ImageKey    string
	Step        int
	ParallelTip string
	WaitTime    int // minutes
	WaitAction  string
}

type Category struct {
	Frequency   Frequency
	Label       string
	Description string
	Sections    []Section
}

// Placement locates a task inside the catalog.
type Placement struct {
	Task      Task
	SectionID string
	Frequency Frequency
}

type Catalog struct {
	categories []Category
	sections   map[string]*Section
	sectionFq  map[string]Frequency
	tasks      map[string]Placement
	manual     map[string][]string
}

// New indexes categories. Task and section ids must be unique across the
// whole catalog.
func New(categories []Category, manual map[string][]string) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		sections:   make(map[string]*Section),
		sectionFq:  make(map[string]Frequency),
		tasks:      make(map[string]Placement),
		manual:     make(map[string][]string, len(manual)),
	}
	for ci := range categories {
		cat := &categories[ci]
		if !cat.Frequency.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFrequency, cat.Frequency)
		}
		sort.SliceStable(cat.Sections, func(i, j int) bool {
			return cat.Sections[i].Step < cat.Sections[j].Step
		})
		for si := range cat.Sections {
			sec := &cat.Sections[si]
			if _, dup := c.sections[sec.ID]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, sec.ID)
			}
			c.sections[sec.ID] = sec
			c.sectionFq[sec.ID] = cat.Frequency
			for _, t := range sec.Tasks {
				if _, dup := c.tasks[t.ID]; dup {
					return nil, fmt.Errorf("%w: %q", ErrDuplicateTask, t.ID)
				}
				c.tasks[t.ID] = Placement{Task: t, SectionID: sec.ID, Frequency: cat.Frequency}
			}
		}
	}
	for id, steps := range manual {
		c.manual[id] = append([]string(nil), steps...)
	}
	return c, nil
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

func (c *Catalog) Category(f Frequency) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Frequency == f {
			return cat, true
		}
	}
	return Category{}, false
}

func (c *Catalog) Section(id string) (Section, Frequency, bool) {
	sec, ok := c.sections[id]
	if !ok {
		return Section{}, "", false
	}
	return *sec, c.sectionFq[id], true
}

func (c *Catalog) Lookup(taskID string) (Placement, bool) {
	p, ok := c.tasks[taskID]
	return p, ok
}

// Resolve returns the task for id. Unknown ids resolve to a placeholder
// whose label is the raw id, so every view counts them the same way.
func (c *Catalog) Resolve(taskID string) (Task, bool) {
	if p, ok := c.tasks[taskID]; ok {
		return p.Task, true
	}
	return Task{ID: taskID, Text: taskID}, false
}

// TaskIDs returns the ids of every task in the frequency, in catalog order.
func (c *Catalog) TaskIDs(f Frequency) []string {
	var ids []string
	for _, cat := range c.categories {
		if cat.Frequency != f {
			continue
		}
		for _, sec := range cat.Sections {
			for _, t := range sec.Tasks {
				ids = append(ids, t.ID)
			}
		}
	}
	return ids
}

// Manual returns the detailed procedure for a section, if one exists.
func (c *Catalog) Manual(sectionID string) []string {
	return c.manual[sectionID]
}
