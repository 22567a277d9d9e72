package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Roundtrip
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	// Returned data is a copy
	data[0] = 'X'
	data2, _, _ := c.Get(ctx, "key")
	if string(data2) != "value" {
		t.Error("mutating returned data should not affect the stored entry")
	}

	// Delete removes the entry
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should expire after its TTL")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2).(*MemoryCache)
	defer c.Close()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	c.Set(ctx, "c", []byte("3"), 0)

	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want capped at 2", got)
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("most recent entry should survive eviction")
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1)
	defer c.Close()

	c.Set(ctx, "key", []byte("old"), 0)
	c.Set(ctx, "key", []byte("new"), 0)

	data, hit, _ := c.Get(ctx, "key")
	if !hit || string(data) != "new" {
		t.Errorf("Get = %q (hit=%v), want overwritten %q", data, hit, "new")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	rows := [][]float64{{0, 1}, {1, 0}}
	same := [][]float64{{0, 1}, {1, 0}}
	other := [][]float64{{0, 2}, {2, 0}}

	// SolveKey depends only on matrix values
	if k.SolveKey(rows) != k.SolveKey(same) {
		t.Error("Identical matrices should produce identical keys")
	}
	if k.SolveKey(rows) == k.SolveKey(other) {
		t.Error("Different matrices should produce different keys")
	}

	// InstanceKey covers presentation data on top of the matrix
	ik := k.InstanceKey("a", []string{"x", "y"}, rows)
	if ik != k.InstanceKey("a", []string{"x", "y"}, same) {
		t.Error("Identical instances should produce identical keys")
	}
	if ik == k.InstanceKey("b", []string{"x", "y"}, rows) {
		t.Error("Different names should produce different keys")
	}
	if ik == k.InstanceKey("a", []string{"x", "z"}, rows) {
		t.Error("Different labels should produce different keys")
	}

	// ArtifactKey should include render parameters in hash
	ak1 := k.ArtifactKey(ik, ArtifactKeyOpts{View: "route", Format: "svg", Width: 800, Height: 600})
	ak2 := k.ArtifactKey(ik, ArtifactKeyOpts{View: "route", Format: "png", Width: 800, Height: 600})
	ak3 := k.ArtifactKey(ik, ArtifactKeyOpts{View: "nodelink", Format: "svg", Width: 800, Height: 600})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
	if ak1 == ak3 {
		t.Error("Different views should produce different keys")
	}
}

func TestKeyType(t *testing.T) {
	if got := keyType("solve:abc123"); got != "solve" {
		t.Errorf("keyType = %q, want %q", got, "solve")
	}
	if got := keyType("bare"); got != "bare" {
		t.Errorf("keyType = %q, want %q", got, "bare")
	}
}
