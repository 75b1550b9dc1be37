// Package storage is the local key-value store that every KireiRoutine
// store persists through. Values are opaque JSON blobs addressed by a
// well-known key, the same shape a browser's localStorage offers.
//
// A store assumes a single writer. Two processes writing the same key
// race and the last Set wins; no cross-process locking is attempted.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
	EngineMemory = "memory"
)

// Well-known keys.
const (
	KeyProgress    = "kireiRoutineProgress"
	KeySectionMeta = "kireiroutine-section-meta-v1"
	KeyCalendar    = "kireiroutine_calendar_v1"
)

var (
	ErrClosed        = errors.New("storage is closed")
	ErrUnknownEngine = errors.New("unsupported storage engine")
)

// KV is a flat string-keyed blob store.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Open selects a backend by engine name. An empty engine means sqlite.
func Open(engine, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return OpenSQLite(path)
	case EngineJSON:
		return OpenJSONFile(path)
	case EngineMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
