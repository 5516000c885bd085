// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if got, ok := c.Get(key); !ok || got != want {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[string](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a") // a becomes most recently used

	if evicted := c.Add("d", 4); !evicted {
		t.Error("Add() at capacity should report an eviction")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be present", key)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Stats().Evictions = %d, want 1", got)
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be present before expiry")
	}

	clock.Advance(time.Minute + time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestLRU_AddRefreshesTTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", 1)
	clock.Advance(50 * time.Second)
	c.Add("a", 2)
	clock.Advance(50 * time.Second)

	got, ok := c.Get("a")
	if !ok || got != 2 {
		t.Errorf("Get(a) = (%d, %v), want (2, true)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Remove(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should still be present")
	}
}

func TestLRU_Clear(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("a should be gone after Clear")
	}
	if got := c.Stats().Hits; got != 1 {
		t.Errorf("Stats().Hits = %d, want 1 (counters survive Clear)", got)
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	clock.Advance(2 * time.Minute)
	c.Add("d", 4)

	if removed := c.CleanupExpired(); removed != 3 {
		t.Errorf("CleanupExpired() = %d, want 3", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get("d"); !ok {
		t.Error("d should still be present")
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v, want hits 2 misses 1 size 1", s)
	}
	if rate := s.HitRate(); rate < 66.6 || rate > 66.7 {
		t.Errorf("HitRate() = %v, want ~66.67", rate)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("HitRate() of empty stats should be 0")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := strconv.Itoa((id + j) % 150)
				c.Add(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Remove(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", c.Len())
	}
	c.Add("final", 1)
	if _, ok := c.Get("final"); !ok {
		t.Error("cache should still work after concurrent access")
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Algorithm string             `json:"algorithm"`
		Items     map[string]float64 `json:"items"`
		N         int                `json:"n"`
	}

	a := GenerateKey("recommend", params{"content", map[string]float64{"A": 4, "B": 5}, 10})
	b := GenerateKey("recommend", params{"content", map[string]float64{"B": 5, "A": 4}, 10})
	c := GenerateKey("recommend", params{"content", map[string]float64{"A": 4, "B": 5}, 5})
	d := GenerateKey("other", params{"content", map[string]float64{"A": 4, "B": 5}, 10})

	if a != b {
		t.Errorf("keys differ for equal params: %q vs %q", a, b)
	}
	if a == c {
		t.Error("keys should differ when N differs")
	}
	if a == d {
		t.Error("keys should differ across namespaces")
	}
	if len(a) != len("recommend:")+32 {
		t.Errorf("len(key) = %d, want %d", len(a), len("recommend:")+32)
	}
}

func TestGenerateKey_Unmarshalable(t *testing.T) {
	key := GenerateKey("ns", make(chan int))
	if key == "" || key[:3] != "ns:" {
		t.Errorf("GenerateKey() = %q, want ns: prefix fallback", key)
	}
}

func BenchmarkLRU_Add(b *testing.B) {
	c := NewLRU[int](10000, time.Minute)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Add(strconv.Itoa(i%20000), i)
	}
}

func BenchmarkLRU_Get(b *testing.B) {
	c := NewLRU[int](10000, time.Minute)
	for i := 0; i < 1000; i++ {
		c.Add(strconv.Itoa(i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(strconv.Itoa(i % 1000))
	}
}
