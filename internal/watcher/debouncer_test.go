package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	mu      sync.Mutex
	batches [][]FileEvent
}

func (f *flushRecorder) record(events []FileEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, events)
}

func (f *flushRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func TestDebouncerCoalescesByPath(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(20*time.Millisecond, 100, rec.record)
	defer d.Stop()

	d.Add(FileEvent{Path: "a.pxl", Type: EventCreate})
	d.Add(FileEvent{Path: "a.pxl", Type: EventModify})
	d.Add(FileEvent{Path: "b.pxl", Type: EventModify})

	require.Eventually(t, func() bool { return rec.count() == 1 },
		time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	batch := rec.batches[0]
	assert.Len(t, batch, 2, "same-path events collapse to the latest")

	byPath := map[string]EventType{}
	for _, ev := range batch {
		byPath[ev.Path] = ev.Type
	}
	assert.Equal(t, EventModify, byPath["a.pxl"])
	assert.Equal(t, EventModify, byPath["b.pxl"])
}

func TestDebouncerFlushesAtMaxBatch(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(time.Hour, 2, rec.record)
	defer d.Stop()

	d.Add(FileEvent{Path: "a.pxl", Type: EventModify})
	assert.Zero(t, rec.count())
	d.Add(FileEvent{Path: "b.pxl", Type: EventModify})

	// Hitting maxBatch flushes immediately, no window wait.
	assert.Equal(t, 1, rec.count())
}

func TestDebouncerStopFlushesPending(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(time.Hour, 100, rec.record)

	d.Add(FileEvent{Path: "a.pxl", Type: EventModify})
	d.Stop()

	assert.Equal(t, 1, rec.count())

	// Events after Stop are dropped.
	d.Add(FileEvent{Path: "b.pxl", Type: EventModify})
	assert.Equal(t, 1, rec.count())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "create", EventCreate.String())
	assert.Equal(t, "modify", EventModify.String())
	assert.Equal(t, "delete", EventDelete.String())
	assert.Equal(t, "rename", EventRename.String())
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, isSourceFile("sprites/hero.pxl"))
	assert.True(t, isSourceFile("data.jsonl"))
	assert.False(t, isSourceFile("notes.txt"))
	assert.False(t, isSourceFile("hero.pxl.bak"))
}
