package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUCache_GetSet(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	c.Set("k", "v1")
	if got, ok := c.Get("k"); !ok || got != "v1" {
		t.Errorf("Get() = (%q, %v), want (v1, true)", got, ok)
	}

	c.Set("k", "v2")
	if got, _ := c.Get("k"); got != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", got)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUCache_Add(t *testing.T) {
	c := NewLRUCache[struct{}](10, time.Minute)

	if !c.Add("update:1", struct{}{}) {
		t.Error("first Add() = false, want true")
	}
	if c.Add("update:1", struct{}{}) {
		t.Error("second Add() = true, want false")
	}
	if !c.Add("update:2", struct{}{}) {
		t.Error("Add() of a fresh key = false, want true")
	}
}

func TestLRUCache_Expiry(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)

	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned an expired entry")
	}
	if !c.Add("k", "v") {
		t.Error("Add() over an expired entry = false, want true")
	}
}

func TestLRUCache_CapacityEviction(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	if c.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry survived capacity eviction")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestLRUCache_CleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestManager_Cleanup(t *testing.T) {
	c := NewLRUCache[int](10, 5*time.Millisecond)
	m := NewManager()
	m.Register(c)
	m.StartCleanup(10 * time.Millisecond)
	defer m.Stop()

	c.Set("k", 1)
	time.Sleep(40 * time.Millisecond)

	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after background cleanup", c.Size())
	}
}
