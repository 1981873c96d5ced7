package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/streamshub/alignreport/pkg/observability"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	key := TreeKey(TreeInputs{POM: "/src/pom.xml", Lineage: [][]byte{[]byte("<project/>")}, Builder: "maven"})
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(ctx, key, []byte(`{"groupId":"g"}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != `{"groupId":"g"}` {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "tree:x", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "tree:x"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "tree:y", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "tree:y"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	fc := c.(*FileCache)

	path := fc.path("tree:bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "tree:bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	for _, k := range []string{"tree:a", "tree:b", "tree:c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "tree:a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestFileCacheHooks(t *testing.T) {
	defer observability.Reset()
	h := &countingHooks{}
	observability.SetCacheHooks(h)

	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	c.Get(ctx, "tree:k")
	c.Set(ctx, "tree:k", []byte("abc"), time.Hour)
	c.Get(ctx, "tree:k")

	if h.miss != 1 || h.hit != 1 || h.set != 1 {
		t.Errorf("hooks = miss %d hit %d set %d, want 1 each", h.miss, h.hit, h.set)
	}
	if h.lastType != "tree" {
		t.Errorf("key type = %q, want tree", h.lastType)
	}
}

func TestTreeKey(t *testing.T) {
	child := []byte("<project><artifactId>core</artifactId></project>")
	parent := []byte("<project><artifactId>parent</artifactId><version>1</version></project>")
	base := TreeInputs{
		POM:     "/src/core/pom.xml",
		Lineage: [][]byte{child, parent},
		Scope:   "compile",
		Command: "mvn",
		Builder: "maven",
	}
	k := TreeKey(base)
	if !strings.HasPrefix(k, "tree:") {
		t.Errorf("key %q should start with tree:", k)
	}
	if k != TreeKey(base) {
		t.Error("TreeKey should be deterministic")
	}

	tests := []struct {
		name   string
		change func(*TreeInputs)
	}{
		{"scope", func(in *TreeInputs) { in.Scope = "test" }},
		{"offline", func(in *TreeInputs) { in.Offline = true }},
		{"command", func(in *TreeInputs) { in.Command = "./mvnw" }},
		{"pom path", func(in *TreeInputs) { in.POM = "/other/core/pom.xml" }},
		{"module pom", func(in *TreeInputs) {
			in.Lineage = [][]byte{[]byte("<project><artifactId>core</artifactId><modules/></project>"), parent}
		}},
		{"parent pom", func(in *TreeInputs) {
			in.Lineage = [][]byte{child, []byte("<project><artifactId>parent</artifactId><version>2</version></project>")}
		}},
		{"parent dropped", func(in *TreeInputs) { in.Lineage = [][]byte{child} }},
		{"file boundary", func(in *TreeInputs) {
			joined := append(append([]byte{}, child...), parent...)
			in.Lineage = [][]byte{joined}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.change(&in)
			if TreeKey(in) == k {
				t.Errorf("changing the %s should change the key", tt.name)
			}
		})
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hit, miss, set int
	lastType       string
}

func (h *countingHooks) OnCacheHit(_ context.Context, kt string)  { h.hit++; h.lastType = kt }
func (h *countingHooks) OnCacheMiss(_ context.Context, kt string) { h.miss++; h.lastType = kt }
func (h *countingHooks) OnCacheSet(_ context.Context, kt string, _ int) {
	h.set++
	h.lastType = kt
}
