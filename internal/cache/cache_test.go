package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("feed", "UC123")
	k2 := Key("feed", "UC456")
	k3 := Key("transcript", "UC123")

	if k1 == k2 || k1 == k3 {
		t.Error("distinct inputs must yield distinct keys")
	}
	if k1 != Key("feed", "UC123") {
		t.Error("keys must be deterministic")
	}
	if !strings.HasPrefix(k1, "sparksmetrics:v1:feed:") {
		t.Errorf("unexpected key shape: %q", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "value" {
		t.Errorf("expected hit with value, got %q found=%v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set(Key("transcript", "vid"), []byte("spoken words"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh instance over the same dir sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	got, found := c2.Get(Key("transcript", "vid"))
	if !found || string(got) != "spoken words" {
		t.Errorf("expected persisted value, got %q found=%v", got, found)
	}

	// Expired entries are dropped on read
	if err := c.Set("stale", []byte("old"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expected expired entry to be dropped")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	seed := NewDiskCache(dir, time.Minute)
	if err := seed.Set("k", []byte("from disk"), time.Minute); err != nil {
		t.Fatal(err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := c.Get("k")
	if !found || string(got) != "from disk" {
		t.Fatalf("expected disk hit, got %q found=%v", got, found)
	}

	// The promoted entry is now served from memory
	if val, found := c.memory.Get("k"); !found || string(val) != "from disk" {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestLayeredCache_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, found := NewDiskCache(dir, time.Minute).Get("k"); !found {
		t.Error("expected write to reach the disk layer")
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}
