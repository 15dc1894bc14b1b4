package lru

import (
	"fmt"
	"testing"

	"pagegate/internal/gate/domain"
)

func TestCache_GetPut(t *testing.T) {
	c, err := New(10)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss on empty cache")
	}

	m := domain.MatchResult{Target: "example.com", BlockRule: "example.com"}
	c.Put("k", m)
	got, ok := c.Get("k")
	if !ok || got != m {
		t.Errorf("Get = %+v, %v; want %+v, true", got, ok, m)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	hits, misses, _ := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats = %d hits, %d misses; want 1, 1", hits, misses)
	}
}

func TestCache_EvictionCounted(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("k%d", i), domain.MatchResult{})
	}
	_, _, evictions := c.Stats()
	if evictions != 3 {
		t.Errorf("evictions = %d, want 3", evictions)
	}
}

func TestCache_Purge(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", domain.MatchResult{})
	c.Put("b", domain.MatchResult{})
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d, want 0", c.Len())
	}
	_, _, evictions := c.Stats()
	if evictions != 2 {
		t.Errorf("evictions after Purge = %d, want 2", evictions)
	}
}

func TestDisabledCache(t *testing.T) {
	c, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", domain.MatchResult{Target: "x"})
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache must always miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	c.Purge() // must not panic
	hits, misses, evictions := c.Stats()
	if hits != 0 || misses != 0 || evictions != 0 {
		t.Error("disabled cache must track no metrics")
	}
}
