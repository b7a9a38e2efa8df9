// internal/httpserver/registry.go
//
// Live game sessions keyed by a random id.
// Each entry has its own mutex so two requests for the same round are
// applied one after the other, while different rounds proceed in parallel.
// Entries idle for longer than the TTL are dropped on the next insert.
// An entry may also carry a named slot (owner, key) so that at most one
// live game exists per slot, e.g. one daily round per player and day.

package httpserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errSessionNotFound = errors.New("session not found")

type entry[T any] struct {
	mu      sync.Mutex
	owner   string
	slot    string
	game    T
	touched time.Time
}

type registry[T any] struct {
	mu    sync.Mutex
	items map[string]*entry[T]
	slots map[string]string // owner+"\x00"+key → id
	ttl   time.Duration
	now   func() time.Time
}

func newRegistry[T any](ttl time.Duration, now func() time.Time) *registry[T] {
	return &registry[T]{items: make(map[string]*entry[T]), slots: make(map[string]string), ttl: ttl, now: now}
}

// add stores game for owner and returns its id.
func (r *registry[T]) add(owner string, game T) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.items[id] = &entry[T]{owner: owner, game: game, touched: r.now()}
	return id
}

// with runs fn on the game under its entry lock. Rounds belonging to another
// player are reported as missing.
func (r *registry[T]) with(id, owner string, fn func(T) error) error {
	r.mu.Lock()
	e, ok := r.items[id]
	r.mu.Unlock()
	if !ok || e.owner != owner {
		return errSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = r.now()
	return fn(e.game)
}

// ensure returns the live game in slot (owner, key), creating it with create
// when the slot is empty, and runs fn on it under its entry lock. create runs
// without the registry lock; if another request filled the slot meanwhile,
// the freshly created game is discarded and the existing one is used.
func (r *registry[T]) ensure(owner, key string, create func() (T, error), fn func(id string, game T) error) error {
	slot := owner + "\x00" + key
	for attempt := 0; ; attempt++ {
		r.mu.Lock()
		id, ok := r.slots[slot]
		r.mu.Unlock()

		if !ok {
			game, err := create()
			if err != nil {
				return err
			}
			r.mu.Lock()
			if id, ok = r.slots[slot]; !ok {
				r.sweepLocked()
				id = uuid.NewString()
				r.items[id] = &entry[T]{owner: owner, slot: slot, game: game, touched: r.now()}
				r.slots[slot] = id
			}
			r.mu.Unlock()
		}
		err := r.with(id, owner, func(game T) error { return fn(id, game) })
		// The slot's entry can be swept between lookup and lock; start over once.
		if errors.Is(err, errSessionNotFound) && attempt == 0 {
			continue
		}
		return err
	}
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *registry[T]) sweepLocked() {
	cutoff := r.now().Add(-r.ttl)
	for id, e := range r.items {
		if e.mu.TryLock() {
			if e.touched.Before(cutoff) {
				delete(r.items, id)
				if e.slot != "" && r.slots[e.slot] == id {
					delete(r.slots, e.slot)
				}
			}
			e.mu.Unlock()
		}
	}
}
