package schedule

import (
	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/logger"
)

// AgendaSize is the number of days, today included, in the upcoming agenda.
const AgendaSize = 7

type Entry struct {
	Task      catalog.Task
	SectionID string
	Frequency catalog.Frequency
	Known     bool
}

type Day struct {
	Date    string
	Entries []Entry
}

type Summary struct {
	Frequency catalog.Frequency
	Date      string
	Count     int
	Found     bool
}

// Resolve turns a day's ids into entries. Ids missing from the catalog are
// kept as placeholder entries labelled with the raw id.
func Resolve(cat *catalog.Catalog, ids []string) []Entry {
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if p, ok := cat.Lookup(id); ok {
			out = append(out, Entry{Task: p.Task, SectionID: p.SectionID, Frequency: p.Frequency, Known: true})
			continue
		}
		task, _ := cat.Resolve(id)
		out = append(out, Entry{Task: task})
	}
	return out
}

// Upcoming returns the agenda for today and the following days.
func Upcoming(m Map, cat *catalog.Catalog, today string, days int) []Day {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		date, err := datekey.AddDays(today, i)
		if err != nil {
			logger.Warn("agenda: bad today key %q: %v", today, err)
			return nil
		}
		out = append(out, Day{Date: date, Entries: Resolve(cat, m[date])})
	}
	return out
}

// NextOccurrences finds, for every frequency, the first date on or after
// today that has a task of that frequency and how many of its tasks fall
// on that date. Keys are fixed-width so string order is date order.
func NextOccurrences(m Map, cat *catalog.Catalog, today string) []Summary {
	out := make([]Summary, 0, len(catalog.Frequencies))
	dates := m.Dates()
	for _, f := range catalog.Frequencies {
		s := Summary{Frequency: f}
		for _, date := range dates {
			if date < today {
				continue
			}
			if n := countFrequency(cat, m[date], f); n > 0 {
				s.Date, s.Count, s.Found = date, n, true
				break
			}
		}
		out = append(out, s)
	}
	return out
}

func countFrequency(cat *catalog.Catalog, ids []string, f catalog.Frequency) int {
	n := 0
	for _, id := range ids {
		if p, ok := cat.Lookup(id); ok && p.Frequency == f {
			n++
		}
	}
	return n
}

// Dominant picks the frequency used to colour a day: the highest-priority
// frequency present, regardless of how many tasks each has.
func Dominant(cat *catalog.Catalog, ids []string) (catalog.Frequency, bool) {
	present := make(map[catalog.Frequency]bool, len(catalog.Frequencies))
	for _, id := range ids {
		if p, ok := cat.Lookup(id); ok {
			present[p.Frequency] = true
		}
	}
	for _, f := range catalog.Frequencies {
		if present[f] {
			return f, true
		}
	}
	return "", false
}

// BulkAssign merges every task of frequency f into each of dates. Invalid
// date keys are skipped.
func (s *Store) BulkAssign(m Map, cat *catalog.Catalog, f catalog.Frequency, dates []string) Map {
	ids := cat.TaskIDs(f)
	if len(ids) == 0 {
		return m
	}
	return s.Mutate(m, func(d Map) {
		for _, date := range dates {
			key, ok := datekey.Normalize(date)
			if !ok {
				logger.Warn("bulk assign: skipping invalid date %q", date)
				continue
			}
			d.Merge(key, ids)
		}
	})
}

// Move takes id off from and merges it into to in a single mutation.
func (s *Store) Move(m Map, id, from, to string) Map {
	return s.MoveMany(m, from, []string{id}, to)
}

// MoveMany reschedules several ids from one day to another at once. An
// invalid target leaves m unchanged.
func (s *Store) MoveMany(m Map, from string, ids []string, to string) Map {
	target, ok := datekey.Normalize(to)
	if !ok {
		logger.Warn("move: invalid target date %q", to)
		return m
	}
	if from == target || len(ids) == 0 {
		return m
	}
	return s.Mutate(m, func(d Map) {
		for _, id := range ids {
			d.Remove(from, id)
		}
		d.Merge(target, ids)
	})
}
