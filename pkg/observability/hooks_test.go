package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerationHooks{}
	g.OnStripStart(ctx, 6)
	g.OnStripComplete(ctx, 6, 12, time.Millisecond, nil)
	g.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Generation() should return NoopGenerationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	gen := &recordingGenerationHooks{}
	SetGenerationHooks(gen)
	if Generation() != gen {
		t.Error("SetGenerationHooks should set custom hooks")
	}

	ch := &recordingCacheHooks{}
	SetCacheHooks(ch)
	if Cache() != ch {
		t.Error("SetCacheHooks should set custom hooks")
	}

	SetGenerationHooks(nil)
	if Generation() != gen {
		t.Error("SetGenerationHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Reset should restore NoopGenerationHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore NoopCacheHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	gen := &recordingGenerationHooks{}
	SetGenerationHooks(gen)

	ctx := context.Background()
	Generation().OnStripStart(ctx, 6)
	Generation().OnStripComplete(ctx, 6, 9, time.Millisecond, nil)

	if gen.starts != 1 || gen.completes != 1 {
		t.Errorf("starts=%d completes=%d, want 1 and 1", gen.starts, gen.completes)
	}
	if gen.lastAttempts != 9 {
		t.Errorf("lastAttempts = %d, want 9", gen.lastAttempts)
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&recordingCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "artifact")
		}()
	}
	wg.Wait()
}

type recordingGenerationHooks struct {
	NoopGenerationHooks
	starts, completes int
	lastAttempts      int
}

func (h *recordingGenerationHooks) OnStripStart(context.Context, int) { h.starts++ }

func (h *recordingGenerationHooks) OnStripComplete(_ context.Context, _, attempts int, _ time.Duration, _ error) {
	h.completes++
	h.lastAttempts = attempts
}

type recordingCacheHooks struct {
	mu   sync.Mutex
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     {}
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) {}
