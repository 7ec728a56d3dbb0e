// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(ttl time.Duration, capacity int) (*Cache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](ttl, capacity)
	c.now = clock.now
	return c, clock
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(time.Minute, 10)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}
	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Errorf("Get(k) = %q, %v", v, ok)
	}
	c.Set("k", "v2")
	if v, _ := c.Get("k"); v != "v2" {
		t.Errorf("overwrite: got %q", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	s := c.GetStats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCache_Expiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(time.Minute, 10)
	c.Set("a", "1")
	c.SetWithTTL("b", "2", time.Hour)

	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b has a longer TTL and should survive")
	}

	c.Set("c", "3")
	clock.t = clock.t.Add(2 * time.Minute)
	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() removed %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.GetStats().Expirations != 2 {
		t.Errorf("Expirations = %d, want 2", c.GetStats().Expirations)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(time.Hour, 2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // b is now least recently used
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should be present", k)
		}
	}
	if c.GetStats().Evictions != 1 {
		t.Errorf("Evictions = %d", c.GetStats().Evictions)
	}
}

func TestCache_DefaultCapacity(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(time.Hour, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want default", c.capacity)
	}
	c.Set("a", "1")
	c.Set("a", "2")
	if c.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", c.Len())
	}
	if v, ok := c.Get("a"); !ok || v != "2" {
		t.Errorf("Get(a) = %q, %v; want 2", v, ok)
	}
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute, 50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := GenerateKey("k", i%70)
				c.Set(key, g)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Title string
		K     int
	}
	k1 := GenerateKey("recommend", params{"Heat", 5})
	k2 := GenerateKey("recommend", params{"Heat", 5})
	k3 := GenerateKey("recommend", params{"Heat", 6})

	if k1 != k2 {
		t.Error("same params should give the same key")
	}
	if k1 == k3 {
		t.Error("different params should give different keys")
	}
	if !strings.HasPrefix(k1, "recommend:") || len(k1) != len("recommend:")+32 {
		t.Errorf("unexpected key shape %q", k1)
	}
}
