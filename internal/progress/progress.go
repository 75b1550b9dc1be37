// Package progress tracks which checklist tasks are ticked off. It is
// independent of section metadata and of the calendar.
package progress

import (
	"encoding/json"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/logger"
	"kireiroutine/internal/storage"
)

// Map records completion per task id. Unticked tasks are absent.
type Map map[string]bool

type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Load() Map {
	data, ok, err := s.kv.Get(storage.KeyProgress)
	if err != nil {
		logger.Warn("progress: read failed: %v", err)
		return Map{}
	}
	if !ok {
		return Map{}
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("progress: stored value is corrupt, starting empty: %v", err)
		return Map{}
	}
	if m == nil {
		return Map{}
	}
	for id, done := range m {
		if !done {
			delete(m, id)
		}
	}
	return m
}

func (s *Store) Save(m Map) {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Warn("progress: encode failed: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyProgress, data); err != nil {
		logger.Warn("progress: save failed: %v", err)
	}
}

func (s *Store) IsDone(taskID string) bool {
	return s.Load()[taskID]
}

func (s *Store) Set(taskID string, done bool) Map {
	m := s.Load()
	if done {
		m[taskID] = true
	} else {
		delete(m, taskID)
	}
	s.Save(m)
	return m
}

// Toggle flips a task and returns its new state.
func (s *Store) Toggle(taskID string) bool {
	done := !s.IsDone(taskID)
	s.Set(taskID, done)
	return done
}

// SectionCompletion counts ticked tasks in sec.
func SectionCompletion(m Map, sec catalog.Section) (done, total int) {
	for _, t := range sec.Tasks {
		if m[t.ID] {
			done++
		}
	}
	return done, len(sec.Tasks)
}

func (s *Store) ResetSection(sec catalog.Section) Map {
	m := s.Load()
	for _, t := range sec.Tasks {
		delete(m, t.ID)
	}
	s.Save(m)
	return m
}

func (s *Store) ResetAll() {
	s.Save(Map{})
}
