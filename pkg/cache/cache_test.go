package cache

import (
	"sync"
	"testing"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

func TestGetMissThenHit(t *testing.T) {
	c := New()

	if _, ok := c.Get(1.0, 1.5); ok {
		t.Error("Expected miss on empty cache")
	}

	c.SetIfAbsent(1.0, 1.5, types.NewSize(1280, 832))
	got, ok := c.Get(1.0, 1.5)
	if !ok {
		t.Fatal("Expected hit after store")
	}
	if got != types.NewSize(1280, 832) {
		t.Errorf("Expected 1280x832, got %s", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Stores != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestSetIfAbsentFirstWriterWins(t *testing.T) {
	c := New()

	stored, inserted := c.SetIfAbsent(1.0, 1.54, types.NewSize(1280, 832))
	if !inserted || stored != types.NewSize(1280, 832) {
		t.Errorf("Expected first write to insert, got %s %v", stored, inserted)
	}

	stored, inserted = c.SetIfAbsent(1.0, 1.54, types.NewSize(1344, 832))
	if inserted {
		t.Error("Expected second write to be rejected")
	}
	if stored != types.NewSize(1280, 832) {
		t.Errorf("Expected canonical 1280x832, got %s", stored)
	}
}

func TestKeysDistinguishResolution(t *testing.T) {
	c := New()
	c.SetIfAbsent(1.0, 1.5, types.NewSize(1280, 832))
	c.SetIfAbsent(0.5, 1.5, types.NewSize(896, 576))

	if c.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", c.Len())
	}
	got, _ := c.Get(0.5, 1.5)
	if got != types.NewSize(896, 576) {
		t.Errorf("Expected 896x576, got %s", got)
	}
}

func TestEntriesSorted(t *testing.T) {
	c := New()
	c.SetIfAbsent(1.0, 1.78, types.NewSize(1344, 768))
	c.SetIfAbsent(0.5, 1.5, types.NewSize(896, 576))
	c.SetIfAbsent(1.0, 0.78, types.NewSize(896, 1152))

	entries := c.Entries()
	want := []Key{{0.5, 1.5}, {1.0, 0.78}, {1.0, 1.78}}
	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(entries))
	}
	for i, k := range want {
		if entries[i].Key != k {
			t.Errorf("Entry %d: expected %+v, got %+v", i, k, entries[i].Key)
		}
	}
}

func TestConcurrentSetIfAbsent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	inserted := make([]bool, 32)

	for i := range inserted {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, inserted[i] = c.SetIfAbsent(1.0, 1.5, types.NewSize(64*(i+1), 64))
			c.Get(1.0, 1.5)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, ok := range inserted {
		if ok {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("Expected exactly one winning write, got %d", winners)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func BenchmarkGet(b *testing.B) {
	c := New()
	c.SetIfAbsent(1.0, 1.5, types.NewSize(1280, 832))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(1.0, 1.5)
	}
}
