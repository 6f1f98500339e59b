package storage

import "sync"

// KeyValue is the durable string store every collection is persisted to.
//
// Get reports absent keys with ok=false; backends log their own read
// failures and report them as absent. Set overwrites the previous value.
type KeyValue interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// Storage keys
const (
	KeyTasks          = "tasks"
	KeyGuests         = "guests"
	KeyExpenses       = "expenses"
	KeyMoodboard      = "moodboard-images"
	KeyWeddingDate    = "wedding-date"
	KeyBudgetGoal     = "budget-goal"
	KeyWeddingEmail   = "wedding-email"
	KeyFinancialGifts = "financial-gifts"
	KeyWeddingGifts   = "wedding-gifts"
)

// MemoryKV keeps values in a map. Nothing survives the process.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
