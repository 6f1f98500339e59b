package storage

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Record is an entity stored in a Collection
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// InsertOrder controls where Add places new records
type InsertOrder int

const (
	// Prepend puts new records first (most recent first)
	Prepend InsertOrder = iota
	// Append puts new records last
	Append
)

// Option configures a Collection
type Option[T Record[T]] func(*Collection[T])

// WithSeed sets the records adopted (and persisted) when the key has never been written
func WithSeed[T Record[T]](seed []T) Option[T] {
	return func(c *Collection[T]) {
		c.seed = seed
	}
}

// WithOrder sets where new records are inserted
func WithOrder[T Record[T]](order InsertOrder) Option[T] {
	return func(c *Collection[T]) {
		c.order = order
	}
}

// Collection is an insertion-ordered list of records persisted as one JSON
// value under a single key. Every mutation rewrites the whole value.
type Collection[T Record[T]] struct {
	mu    sync.RWMutex
	kv    KeyValue
	key   string
	items []T
	seed  []T
	order InsertOrder
	log   zerolog.Logger

	onChange func(items []T)
}

// NewCollection loads the collection stored under key, seeding it when absent
func NewCollection[T Record[T]](kv KeyValue, key string, log zerolog.Logger, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		kv:  kv,
		key: key,
		log: log.With().Str("component", "store").Str("key", key).Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.onChange = c.persist

	c.load()
	return c
}

func (c *Collection[T]) load() {
	raw, ok := c.kv.Get(c.key)
	if ok {
		var items []T
		err := json.Unmarshal([]byte(raw), &items)
		if err == nil {
			if items == nil {
				items = []T{}
			}
			c.items = items
			c.log.Debug().Int("count", len(items)).Msg("Loaded collection")
			return
		}
		c.log.Warn().Err(err).Msg("Stored collection is malformed, reseeding")
	}

	c.items = append([]T{}, c.seed...)
	c.onChange(c.items)
}

// persist writes the full collection to its key
func (c *Collection[T]) persist(items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to encode collection")
		return
	}
	if err := c.kv.Set(c.key, string(data)); err != nil {
		c.log.Error().Err(err).Msg("Failed to persist collection")
	}
}

// Key returns the storage key
func (c *Collection[T]) Key() string {
	return c.key
}

// Items returns a copy of all records in order
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Find returns the record with the given id
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records matching keep, in order
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []T
	for _, item := range c.items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// Add inserts a record and returns it as stored. A record without an id,
// or whose id is already taken, gets a fresh one.
func (c *Collection[T]) Add(record T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id := record.RecordID(); id == "" || c.indexOf(id) >= 0 {
		record = record.WithID(NewID())
	}

	items := make([]T, 0, len(c.items)+1)
	if c.order == Append {
		items = append(items, c.items...)
		items = append(items, record)
	} else {
		items = append(items, record)
		items = append(items, c.items...)
	}
	c.items = items
	c.onChange(c.items)

	return record
}

// Update replaces the record with the given id by fn's result.
// It reports false (and writes nothing) when the id is unknown.
func (c *Collection[T]) Update(id string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	// the id is not patchable
	c.items[i] = fn(c.items[i]).WithID(id)
	c.onChange(c.items)
	return true
}

// Remove deletes the record with the given id.
// It reports false (and writes nothing) when the id is unknown.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	items := make([]T, 0, len(c.items)-1)
	items = append(items, c.items[:i]...)
	items = append(items, c.items[i+1:]...)
	c.items = items
	c.onChange(c.items)
	return true
}

// Replace swaps the whole collection
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{}, items...)
	c.onChange(c.items)
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

// Aggregate folds the current records with fn. Results are never cached.
// fn must not retain or modify the slice.
func Aggregate[T Record[T], R any](c *Collection[T], fn func(items []T) R) R {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return fn(c.items)
}
