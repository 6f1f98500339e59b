package storage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/models"
)

// countingKV records how many writes reach the backend
type countingKV struct {
	KeyValue
	writes map[string]int
}

func newCountingKV() *countingKV {
	return &countingKV{KeyValue: NewMemoryKV(), writes: make(map[string]int)}
}

func (c *countingKV) Set(key, value string) error {
	c.writes[key]++
	return c.KeyValue.Set(key, value)
}

func backends(t *testing.T) map[string]func() KeyValue {
	t.Helper()
	dir := t.TempDir()
	log := zerolog.Nop()
	mem := NewMemoryKV()

	return map[string]func() KeyValue{
		"memory": func() KeyValue { return mem },
		"file": func() KeyValue {
			kv, err := NewFileKV(filepath.Join(dir, "planner.json"), log)
			require.NoError(t, err)
			return kv
		},
		"sqlite": func() KeyValue {
			kv, err := NewSQLiteKV(filepath.Join(dir, "planner.db"), log)
			require.NoError(t, err)
			t.Cleanup(func() { kv.Close() })
			return kv
		},
	}
}

func TestCollectionSeedsDefaultTasks(t *testing.T) {
	kv := newCountingKV()

	tasks := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	assert.Equal(t, models.DefaultTasks(), tasks.Items())
	assert.Equal(t, 1, kv.writes[KeyTasks], "seed must be persisted immediately")

	again := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed([]models.Task{}))
	assert.Equal(t, models.DefaultTasks(), again.Items())
	assert.Equal(t, 1, kv.writes[KeyTasks], "loading an existing key must not write")
}

func TestCollectionSeedsEmptyWithoutDefault(t *testing.T) {
	kv := NewMemoryKV()

	guests := NewCollection[models.Guest](kv, KeyGuests, zerolog.Nop())
	assert.Empty(t, guests.Items())

	raw, ok := kv.Get(KeyGuests)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestCollectionMalformedValueReseeds(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyTasks, "{not json"))

	tasks := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	assert.Len(t, tasks.Items(), 3)

	raw, _ := kv.Get(KeyTasks)
	assert.JSONEq(t, mustJSON(t, models.DefaultTasks()), raw)
}

func TestCollectionNullValueIsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyTasks, "null"))

	tasks := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	assert.NotNil(t, tasks.Items())
	assert.Empty(t, tasks.Items())
}

func TestCollectionAddOrder(t *testing.T) {
	kv := NewMemoryKV()

	tasks := NewCollection[models.Task](kv, KeyTasks, zerolog.Nop())
	tasks.Add(models.Task{Title: "first"})
	tasks.Add(models.Task{Title: "second"})
	items := tasks.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)

	guests := NewCollection(kv, KeyGuests, zerolog.Nop(), WithOrder[models.Guest](Append))
	guests.Add(models.Guest{Name: "Ann"})
	guests.Add(models.Guest{Name: "Bob"})
	assert.Equal(t, "Bob", guests.Items()[1].Name)
}

func TestCollectionAddAssignsUniqueIDs(t *testing.T) {
	tasks := NewCollection(NewMemoryKV(), KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))

	added := tasks.Add(models.Task{Title: "no id"})
	assert.NotEmpty(t, added.ID)

	dup := tasks.Add(models.Task{ID: "1", Title: "taken id"})
	assert.NotEqual(t, "1", dup.ID)

	kept := tasks.Add(models.Task{ID: "custom", Title: "free id"})
	assert.Equal(t, "custom", kept.ID)

	seen := map[string]bool{}
	for _, task := range tasks.Items() {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestCollectionUpdateAndRemove(t *testing.T) {
	kv := newCountingKV()
	tasks := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	writes := kv.writes[KeyTasks]

	ok := tasks.Update("2", func(task models.Task) models.Task {
		task.Completed = true
		task.ID = "hijack"
		return task
	})
	require.True(t, ok)
	got, found := tasks.Find("2")
	require.True(t, found)
	assert.True(t, got.Completed)
	assert.Equal(t, writes+1, kv.writes[KeyTasks])

	assert.False(t, tasks.Update("missing", func(task models.Task) models.Task { return task }))
	assert.False(t, tasks.Remove("missing"))
	assert.Equal(t, writes+1, kv.writes[KeyTasks], "no-ops must not write")

	require.True(t, tasks.Remove("1"))
	assert.Equal(t, 2, tasks.Len())
	_, found = tasks.Find("1")
	assert.False(t, found)
}

func TestCollectionRoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open()
			log := zerolog.Nop()

			tasks := NewCollection(kv, KeyTasks, log, WithSeed(models.DefaultTasks()))
			guests := NewCollection(kv, KeyGuests, log, WithOrder[models.Guest](Append))
			expenses := NewCollection[models.Expense](kv, KeyExpenses, log)
			mood := NewCollection[models.MoodImage](kv, KeyMoodboard, log)
			fin := NewCollection[models.FinancialGift](kv, KeyFinancialGifts, log)
			wed := NewCollection[models.WeddingGift](kv, KeyWeddingGifts, log)

			tasks.Add(models.Task{Title: "Book band", Category: "Music", DueDate: "2025-03-01"})
			guests.Add(models.Guest{Name: "Ann", Status: models.GuestConfirmed, PlusOne: true, Dietary: "vegan", Phone: "972501234567"})
			expenses.Add(models.Expense{Category: "Venue", Item: "Deposit", Cost: 500, PaidAmount: 200, Status: models.ExpensePartiallyPaid, ContactEmail: "venue@example.com"})
			mood.Add(models.MoodImage{URL: "data:image/png;base64,AAAA", Prompt: "peonies.png"})
			fin.Add(models.FinancialGift{GiverName: "Aunt May", Amount: 150.5, Date: "2025-06-20", Type: models.GiftCheque, Notes: "honeymoon"})
			wed.Add(models.WeddingGift{GiverName: "Bob", ItemName: "Mixer", Date: "2025-06-20", Thanked: true})

			reopened := open()
			assert.Equal(t, tasks.Items(), NewCollection[models.Task](reopened, KeyTasks, log).Items())
			assert.Equal(t, guests.Items(), NewCollection[models.Guest](reopened, KeyGuests, log).Items())
			assert.Equal(t, expenses.Items(), NewCollection[models.Expense](reopened, KeyExpenses, log).Items())
			assert.Equal(t, mood.Items(), NewCollection[models.MoodImage](reopened, KeyMoodboard, log).Items())
			assert.Equal(t, fin.Items(), NewCollection[models.FinancialGift](reopened, KeyFinancialGifts, log).Items())
			assert.Equal(t, wed.Items(), NewCollection[models.WeddingGift](reopened, KeyWeddingGifts, log).Items())
		})
	}
}

func TestPickVenueScenario(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyTasks, "[]"))

	tasks := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	added := tasks.Add(models.Task{Title: "Pick a venue", Category: models.DefaultTaskCategory})
	tasks.Update(added.ID, func(task models.Task) models.Task {
		task.Completed = !task.Completed
		return task
	})

	reloaded := NewCollection(kv, KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Pick a venue", items[0].Title)
	assert.True(t, items[0].Completed)
}

func TestAggregate(t *testing.T) {
	tasks := NewCollection(NewMemoryKV(), KeyTasks, zerolog.Nop(), WithSeed(models.DefaultTasks()))
	completed := func(items []models.Task) int {
		n := 0
		for _, task := range items {
			if task.Completed {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 1, Aggregate(tasks, completed))
	tasks.Update("2", func(task models.Task) models.Task {
		task.Completed = true
		return task
	})
	assert.Equal(t, 2, Aggregate(tasks, completed))
}
