package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/bingocards/pkg/layout"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "k1", []byte("pdf-bytes"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k1"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Seed: 42, Tickets: 6, Alphabet: "greek", Geometry: layout.DefaultGeometry(), Format: "svg"}

	k1 := k.ArtifactKey(base)
	if !strings.HasPrefix(k1, "artifact:") {
		t.Errorf("ArtifactKey = %s, want artifact: prefix", k1)
	}
	if k1 != k.ArtifactKey(base) {
		t.Error("ArtifactKey should be deterministic")
	}

	variants := []func(*ArtifactKeyOpts){
		func(o *ArtifactKeyOpts) { o.Seed = 43 },
		func(o *ArtifactKeyOpts) { o.Format = "pdf" },
		func(o *ArtifactKeyOpts) { o.Geometry.Cols = 2 },
		func(o *ArtifactKeyOpts) { o.Geometry.Margin = 10 },
		func(o *ArtifactKeyOpts) { o.DPI = 300 },
	}
	for i, mutate := range variants {
		o := base
		mutate(&o)
		if k.ArtifactKey(o) == k1 {
			t.Errorf("variant %d produced the same key", i)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prod:")
	key := scoped.ArtifactKey(ArtifactKeyOpts{Seed: 1})
	if !strings.HasPrefix(key, "prod:artifact:") {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	defer func() { retryDelay = 200 * time.Millisecond }()

	calls := 0
	plain := errors.New("boom")
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	})
	if err != plain || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
