// Package schedule owns the calendar: which task ids are planned on which
// date, the recurrence engine that fills it, and the views derived from it.
package schedule

import (
	"encoding/json"
	"sort"

	"kireiroutine/internal/logger"
	"kireiroutine/internal/storage"
)

// Map assigns task ids to YYYY-MM-DD date keys. A key never maps to an
// empty list; a day without tasks has no key at all.
type Map map[string][]string

// Clone copies the map and every day's list.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, ids := range m {
		out[k] = append([]string(nil), ids...)
	}
	return out
}

// Dates returns the keys in chronological order.
func (m Map) Dates() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether id is planned on date.
func (m Map) Has(date, id string) bool {
	for _, v := range m[date] {
		if v == id {
			return true
		}
	}
	return false
}

// Replace sets the day's list to the de-duplicated ids.
func (m Map) Replace(date string, ids []string) {
	m.set(date, dedupe(ids))
}

// Merge adds ids to the day, keeping what is already there.
func (m Map) Merge(date string, ids []string) {
	merged := make([]string, 0, len(m[date])+len(ids))
	merged = append(merged, m[date]...)
	merged = append(merged, ids...)
	m.set(date, dedupe(merged))
}

// Remove drops id from the day.
func (m Map) Remove(date, id string) {
	cur, ok := m[date]
	if !ok {
		return
	}
	kept := make([]string, 0, len(cur))
	for _, v := range cur {
		if v != id {
			kept = append(kept, v)
		}
	}
	m.set(date, kept)
}

func (m Map) Clear(date string) {
	delete(m, date)
}

func (m Map) set(date string, ids []string) {
	if len(ids) == 0 {
		delete(m, date)
		return
	}
	m[date] = ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Store persists the calendar under storage.KeyCalendar. Every operation
// takes the caller's map, works on a copy and returns the copy; the
// caller's map is never modified.
//
// The store assumes it is the only writer. Another process saving the
// same key in between is silently overwritten by the next save.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted calendar, or an empty one when nothing is
// stored or the stored value cannot be parsed.
func (s *Store) Load() Map {
	data, ok, err := s.kv.Get(storage.KeyCalendar)
	if err != nil {
		logger.Warn("calendar: read failed: %v", err)
		return Map{}
	}
	if !ok {
		return Map{}
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("calendar: stored value is corrupt, starting empty: %v", err)
		return Map{}
	}
	m := make(Map, len(raw))
	for date, ids := range raw {
		m.Replace(date, ids)
	}
	logger.Debug("calendar: loaded %d days", len(m))
	return m
}

// Save writes the whole map. Failures are logged and otherwise ignored.
func (s *Store) Save(m Map) {
	data, err := json.Marshal(map[string][]string(m))
	if err != nil {
		logger.Warn("calendar: encode failed: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyCalendar, data); err != nil {
		logger.Warn("calendar: save failed: %v", err)
	}
}

// Mutate applies fn to a deep copy of m, saves the result and returns it.
// All other mutations are built on it, so a multi-step change is either
// fully visible in the returned map or not at all.
func (s *Store) Mutate(m Map, fn func(draft Map)) Map {
	draft := m.Clone()
	fn(draft)
	for date, ids := range draft {
		if len(ids) == 0 {
			delete(draft, date)
		}
	}
	s.Save(draft)
	return draft
}

func (s *Store) ReplaceDay(m Map, date string, ids []string) Map {
	return s.Mutate(m, func(d Map) { d.Replace(date, ids) })
}

func (s *Store) MergeDay(m Map, date string, ids []string) Map {
	return s.Mutate(m, func(d Map) { d.Merge(date, ids) })
}

func (s *Store) ClearDay(m Map, date string) Map {
	return s.Mutate(m, func(d Map) { d.Clear(date) })
}
