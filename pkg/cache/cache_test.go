package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundtrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	payload := []byte(`{"nodes":[]}`)
	if err := c.Set(ctx, "diagram:abc", payload, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, "diagram:abc")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}

	if err := c.Delete(ctx, "diagram:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "diagram:abc"); ok {
		t.Errorf("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "diagram:abc"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Non-positive ttl means no expiration.
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Errorf("entry without expiration should hit")
	}

	if err := c.Set(ctx, "k2", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k2"); ok {
		t.Errorf("expired entry should miss")
	}
	// Expired entries are removed from disk on read.
	fc := c.(*FileCache)
	if _, err := os.Stat(fc.path("k2")); !os.IsNotExist(err) {
		t.Errorf("expired entry file should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	path := fc.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "bad"); err != nil || ok {
		t.Errorf("corrupt entry should be a clean miss, got ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt entry file should be removed")
	}
}

func TestFileCacheSharding(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)
	rel, err := filepath.Rel(dir, fc.path("some-key"))
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 || len(parts[0]) != 2 {
		t.Errorf("path %q should shard into a two-character subdirectory", rel)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("null cache should always miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("abc"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("abc")) {
		t.Errorf("Hash should be deterministic")
	}
	if h == Hash([]byte("abd")) {
		t.Errorf("different inputs should hash differently")
	}
	// Known digest of "abc".
	if h != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("Hash(abc) = %s", h)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	g1 := k.GraphKey("hash1", GraphKeyOpts{MaxPerResource: 5})
	if !strings.HasPrefix(g1, "graph:") {
		t.Errorf("graph key %q should carry the graph prefix", g1)
	}
	if g1 != k.GraphKey("hash1", GraphKeyOpts{MaxPerResource: 5}) {
		t.Errorf("identical inputs should produce identical keys")
	}
	if g1 == k.GraphKey("hash2", GraphKeyOpts{MaxPerResource: 5}) {
		t.Errorf("resource hash should affect the key")
	}
	if g1 == k.GraphKey("hash1", GraphKeyOpts{MaxPerResource: 5, HideImplicit: true}) {
		t.Errorf("extraction options should affect the key")
	}

	d1 := k.DiagramKey("hash1", DiagramKeyOpts{Layout: "flow"})
	if !strings.HasPrefix(d1, "diagram:") {
		t.Errorf("diagram key %q should carry the diagram prefix", d1)
	}
	if d1 == k.DiagramKey("hash1", DiagramKeyOpts{Layout: "layered"}) {
		t.Errorf("layout options should affect the key")
	}
	if d1 == g1 {
		t.Errorf("graph and diagram keys should never collide")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "tenant42:")

	g := k.GraphKey("h", GraphKeyOpts{})
	if !strings.HasPrefix(g, "tenant42:graph:") {
		t.Errorf("scoped graph key = %q", g)
	}
	if strings.TrimPrefix(g, "tenant42:") != inner.GraphKey("h", GraphKeyOpts{}) {
		t.Errorf("scoped key should wrap the inner key unchanged")
	}

	d := k.DiagramKey("h", DiagramKeyOpts{})
	if !strings.HasPrefix(d, "tenant42:diagram:") {
		t.Errorf("scoped diagram key = %q", d)
	}

	// Nil inner falls back to the default scheme.
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.GraphKey("h", GraphKeyOpts{}) != "p:"+inner.GraphKey("h", GraphKeyOpts{}) {
		t.Errorf("nil inner keyer should use the default scheme")
	}
}
