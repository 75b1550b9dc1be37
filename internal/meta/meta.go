// Package meta stores per-section tracking state: when a section was last
// done, when it is next due, a free-text note and which manual steps are
// complete.
//
// Older data used different field names (lastDoneAt, nextPlannedAt as
// ISO-8601 timestamps, memo). Those are migrated on read into the canonical
// fields; writes emit the canonical fields plus the legacy mirrors.
package meta

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/logger"
	"kireiroutine/internal/storage"
)

type Meta struct {
	LastDoneDate   string
	NextDueDate    string
	Note           string
	CompletedSteps []int
}

// HasStep reports whether the 1-based manual step n is complete.
func (m Meta) HasStep(n int) bool {
	for _, s := range m.CompletedSteps {
		if s == n {
			return true
		}
	}
	return false
}

// Map is keyed by section id.
type Map map[string]Meta

// Patch lists the fields Update overwrites; nil fields are left alone.
type Patch struct {
	LastDoneDate   *string
	NextDueDate    *string
	Note           *string
	CompletedSteps *[]int
}

type record struct {
	LastDoneDate   string  `json:"lastDoneDate,omitempty"`
	LastDoneAt     string  `json:"lastDoneAt,omitempty"`
	NextDueDate    string  `json:"nextDueDate,omitempty"`
	NextPlannedAt  string  `json:"nextPlannedAt,omitempty"`
	Note           *string `json:"note,omitempty"`
	Memo           *string `json:"memo,omitempty"`
	CompletedSteps []int   `json:"completedSteps,omitempty"`
}

// resolveDate prefers the plain date and falls back to truncating the
// legacy timestamp.
func resolveDate(plain, iso string, loc *time.Location) string {
	if d, ok := datekey.Normalize(plain); ok {
		return d
	}
	if d, ok := datekey.FromISO(iso, loc); ok {
		return d
	}
	return ""
}

func (r record) migrate(loc *time.Location) Meta {
	m := Meta{
		LastDoneDate:   resolveDate(r.LastDoneDate, r.LastDoneAt, loc),
		NextDueDate:    resolveDate(r.NextDueDate, r.NextPlannedAt, loc),
		CompletedSteps: normalizeSteps(r.CompletedSteps),
	}
	switch {
	case r.Note != nil:
		m.Note = *r.Note
	case r.Memo != nil:
		m.Note = *r.Memo
	}
	return m
}

func toRecord(m Meta, loc *time.Location) record {
	r := record{
		LastDoneDate:   m.LastDoneDate,
		NextDueDate:    m.NextDueDate,
		CompletedSteps: normalizeSteps(m.CompletedSteps),
	}
	// A date that cannot be converted leaves its legacy mirror unset.
	if iso, ok := datekey.ToISO(m.LastDoneDate, loc); ok {
		r.LastDoneAt = iso
	}
	if iso, ok := datekey.ToISO(m.NextDueDate, loc); ok {
		r.NextPlannedAt = iso
	}
	if m.Note != "" {
		note := m.Note
		r.Note, r.Memo = &note, &note
	}
	return r
}

func normalizeSteps(steps []int) []int {
	if len(steps) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(steps))
	out := make([]int, 0, len(steps))
	for _, s := range steps {
		if s <= 0 {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Ints(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Store persists the map under storage.KeySectionMeta. Updates are
// load-merge-save with the last write winning; a single writer is assumed.
type Store struct {
	kv  storage.KV
	loc *time.Location
}

// NewStore uses loc for legacy timestamp conversion; nil means time.Local.
func NewStore(kv storage.KV, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{kv: kv, loc: loc}
}

func (s *Store) Load() Map {
	data, ok, err := s.kv.Get(storage.KeySectionMeta)
	if err != nil {
		logger.Warn("section meta: read failed: %v", err)
		return Map{}
	}
	if !ok {
		return Map{}
	}
	var raw map[string]record
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("section meta: stored value is corrupt, starting empty: %v", err)
		return Map{}
	}
	m := make(Map, len(raw))
	for id, r := range raw {
		m[id] = r.migrate(s.loc)
	}
	return m
}

func (s *Store) Save(m Map) {
	raw := make(map[string]record, len(m))
	for id, v := range m {
		raw[id] = toRecord(v, s.loc)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		logger.Warn("section meta: encode failed: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeySectionMeta, data); err != nil {
		logger.Warn("section meta: save failed: %v", err)
	}
}

// Get returns the zero Meta for sections that have never been written.
func (s *Store) Get(id string) Meta {
	return s.Load()[id]
}

// Update shallow-merges p into the section's entry, creating it if needed.
func (s *Store) Update(id string, p Patch) Meta {
	m := s.Load()
	cur := m[id]
	if p.LastDoneDate != nil {
		cur.LastDoneDate = *p.LastDoneDate
	}
	if p.NextDueDate != nil {
		cur.NextDueDate = *p.NextDueDate
	}
	if p.Note != nil {
		cur.Note = *p.Note
	}
	if p.CompletedSteps != nil {
		cur.CompletedSteps = normalizeSteps(*p.CompletedSteps)
	}
	m[id] = cur
	s.Save(m)
	logger.Debug("section meta: updated %s", id)
	return cur
}

// MarkDone records a completion today and pushes the next due date out by
// the frequency's fixed interval.
func (s *Store) MarkDone(id string, f catalog.Frequency, today string) (Meta, error) {
	next, err := NextDueFrom(f, today)
	if err != nil {
		return s.Get(id), err
	}
	return s.Update(id, Patch{LastDoneDate: &today, NextDueDate: &next}), nil
}

// SetNextDue validates input and stores it. Invalid input changes nothing
// and reports false.
func (s *Store) SetNextDue(id, input string) (Meta, bool) {
	d, ok := datekey.Normalize(input)
	if !ok {
		logger.Debug("section meta: rejected due date %q for %s", input, id)
		return s.Get(id), false
	}
	return s.Update(id, Patch{NextDueDate: &d}), true
}

func (s *Store) SetNote(id, note string) Meta {
	return s.Update(id, Patch{Note: &note})
}

// ToggleStep flips completion of the 1-based manual step n.
func (s *Store) ToggleStep(id string, n int) Meta {
	cur := s.Get(id)
	steps := make([]int, 0, len(cur.CompletedSteps)+1)
	if cur.HasStep(n) {
		for _, v := range cur.CompletedSteps {
			if v != n {
				steps = append(steps, v)
			}
		}
	} else {
		steps = append(steps, cur.CompletedSteps...)
		steps = append(steps, n)
	}
	return s.Update(id, Patch{CompletedSteps: &steps})
}

// Reset forgets everything recorded for a section.
func (s *Store) Reset(id string) {
	m := s.Load()
	if _, ok := m[id]; !ok {
		return
	}
	delete(m, id)
	s.Save(m)
}

func (s *Store) ResetAll() {
	s.Save(Map{})
}

// IsDueToday reports whether m's next due date is today or earlier. A meta
// without a due date is never due.
func IsDueToday(m Meta, today string) bool {
	return m.NextDueDate != "" && m.NextDueDate <= today
}

// Due lists the ids of due sections in catalog order.
func Due(m Map, cat *catalog.Catalog, today string) []string {
	var ids []string
	for _, c := range cat.Categories() {
		for _, sec := range c.Sections {
			if IsDueToday(m[sec.ID], today) {
				ids = append(ids, sec.ID)
			}
		}
	}
	return ids
}

// NextDueFrom adds a fixed day count per frequency (30 for monthly, 365 for
// annual). Unlike schedule.Occurrences it does not step calendar months.
func NextDueFrom(f catalog.Frequency, today string) (string, error) {
	days, ok := intervalDays[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", catalog.ErrUnknownFrequency, f)
	}
	return datekey.AddDays(today, days)
}

var intervalDays = map[catalog.Frequency]int{
	catalog.Weekly:     7,
	catalog.BiWeekly:   14,
	catalog.Monthly:    30,
	catalog.Quarterly:  90,
	catalog.SemiAnnual: 180,
	catalog.Annual:     365,
}
