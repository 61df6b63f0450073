// Package store owns the two persisted aggregates: the transaction ledger and the settings object.
// Both are explicit objects built around a kvstore.Store and shared through the container.
package store

import (
	"encoding/json"
	"sync"

	"fjacquet/biztrack/internal/ledgererror"
)

// ChangeKind identifies the mutation that produced a ChangeEvent.
type ChangeKind string

const (
	ChangeUpsert   ChangeKind = "upsert"
	ChangeRemove   ChangeKind = "remove"
	ChangeSettings ChangeKind = "settings"
)

// ChangeEvent is delivered to subscribers after a successful mutation.
type ChangeEvent struct {
	Kind ChangeKind
	// ID is the affected transaction id; empty for settings changes.
	ID string
}

// Listener receives change events. It runs synchronously on the mutating goroutine
// after the store lock has been released.
type Listener func(ChangeEvent)

type listeners struct {
	mu  sync.Mutex
	fns []Listener
}

func (l *listeners) add(fn Listener) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, fn)
}

func (l *listeners) notify(ev ChangeEvent) {
	l.mu.Lock()
	fns := append([]Listener(nil), l.fns...)
	l.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func decode(key string, raw []byte, into any) error {
	if err := json.Unmarshal(raw, into); err != nil {
		return ledgererror.Unreadable(key, err)
	}
	return nil
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ledgererror.StorageError{Key: key, Op: "encode", Err: err}
	}
	return data, nil
}
