package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/cache"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestKey(t *testing.T) {
	if got := cache.Key("schedule", 2026); got != "schedule-2026" {
		t.Errorf("Key() = %s, want schedule-2026", got)
	}
	if got := cache.Key("summary", "401712345"); got != "summary-401712345" {
		t.Errorf("Key() = %s, want summary-401712345", got)
	}
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryStore(), time.Minute)

	in := map[string]interface{}{"events": []interface{}{"a", "b"}}
	if err := c.Set(ctx, "schedule-2026", in); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var out map[string]interface{}
	found, err := c.Get(ctx, "schedule-2026", &out)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v, want hit", found, err)
	}
	if events, _ := out["events"].([]interface{}); len(events) != 2 {
		t.Errorf("Get() data = %v", out)
	}
}

func TestCache_Miss(t *testing.T) {
	c := cache.New(cache.NewMemoryStore(), time.Minute)

	var out map[string]interface{}
	found, err := c.Get(context.Background(), "roster-2026", &out)
	if err != nil || found {
		t.Errorf("Get() = %v, %v, want miss", found, err)
	}
}

func TestCache_ExpiredEntryIsEvicted(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	clk := &clock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	c := cache.New(store, 30*time.Minute).WithClock(clk.now)

	if err := c.Set(ctx, "team-2026", map[string]string{"id": "41"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var out map[string]string

	clk.t = clk.t.Add(29 * time.Minute)
	if found, _ := c.Get(ctx, "team-2026", &out); !found {
		t.Fatal("entry expired early")
	}

	clk.t = clk.t.Add(time.Minute)
	if found, _ := c.Get(ctx, "team-2026", &out); found {
		t.Fatal("entry served at its expiry")
	}
	if store.Len() != 0 {
		t.Errorf("expired slot still stored (%d entries)", store.Len())
	}
}

func TestCache_EnvelopeFormat(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c := cache.New(store, 30*time.Minute).WithClock(func() time.Time { return at })

	if err := c.Set(ctx, "k", []int{1, 2}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	raw, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("store.Get() error: %v", err)
	}
	var entry cache.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("envelope is not JSON: %v", err)
	}
	if want := at.Add(30 * time.Minute).UnixMilli(); entry.Expiry != want {
		t.Errorf("Expiry = %d, want %d", entry.Expiry, want)
	}
	if string(entry.Data) != "[1,2]" {
		t.Errorf("Data = %s, want [1,2]", entry.Data)
	}
}

func TestCache_UnreadableEntryIsEvicted(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	store.Set(ctx, "bad", []byte("not json"), 0)
	c := cache.New(store, time.Minute)

	var out interface{}
	if found, err := c.Get(ctx, "bad", &out); found || err != nil {
		t.Errorf("Get() = %v, %v, want silent miss", found, err)
	}
	if store.Len() != 0 {
		t.Error("unreadable slot not cleared")
	}
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *cache.Cache
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1); err != nil {
		t.Errorf("nil Set() error: %v", err)
	}
	var out int
	if found, err := c.Get(ctx, "k", &out); found || err != nil {
		t.Errorf("nil Get() = %v, %v", found, err)
	}
}
