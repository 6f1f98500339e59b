package storage

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// StringValue is a single string setting stored raw under its key
type StringValue struct {
	mu    sync.RWMutex
	kv    KeyValue
	key   string
	value string
	log   zerolog.Logger
}

// NewStringValue loads the value under key, falling back to def when absent
func NewStringValue(kv KeyValue, key, def string, log zerolog.Logger) *StringValue {
	v := &StringValue{
		kv:    kv,
		key:   key,
		value: def,
		log:   log.With().Str("component", "store").Str("key", key).Logger(),
	}
	if raw, ok := kv.Get(key); ok {
		v.value = raw
	}
	return v
}

func (v *StringValue) Get() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.value
}

func (v *StringValue) Set(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.value = value
	if err := v.kv.Set(v.key, value); err != nil {
		v.log.Error().Err(err).Msg("Failed to persist setting")
	}
}

// NumberValue is a numeric setting stored as its decimal string
type NumberValue struct {
	mu    sync.RWMutex
	kv    KeyValue
	key   string
	value float64
	log   zerolog.Logger
}

// NewNumberValue loads the value under key. Absent or unparseable values
// fall back to def without any user-visible error.
func NewNumberValue(kv KeyValue, key string, def float64, log zerolog.Logger) *NumberValue {
	v := &NumberValue{
		kv:    kv,
		key:   key,
		value: def,
		log:   log.With().Str("component", "store").Str("key", key).Logger(),
	}
	if raw, ok := kv.Get(key); ok {
		if n, ok := ParseNumber(raw); ok {
			v.value = n
		} else {
			v.log.Debug().Str("raw", raw).Float64("default", def).Msg("Stored number unparseable, using default")
		}
	}
	return v
}

func (v *NumberValue) Get() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.value
}

func (v *NumberValue) Set(value float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.value = value
	if err := v.kv.Set(v.key, FormatNumber(value)); err != nil {
		v.log.Error().Err(err).Msg("Failed to persist setting")
	}
}

// FormatNumber renders n in the shortest decimal form that parses back exactly
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ParseNumber parses a finite decimal number
func ParseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
