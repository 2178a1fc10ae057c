// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; main registers a
// backend at startup. Without registration every hook is a no-op, so the
// core packages carry no dependency on a metrics framework.
//
//	func main() {
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks around their work:
//
//	observability.Generation().OnStripStart(ctx, tickets)
//	// ... generate ...
//	observability.Generation().OnStripComplete(ctx, tickets, attempts, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from strip generation and rendering.
type GenerationHooks interface {
	OnStripStart(ctx context.Context, tickets int)
	// OnStripComplete reports the number of tickets produced and the total
	// mask attempts spent across them.
	OnStripComplete(ctx context.Context, tickets, maskAttempts int, duration time.Duration, err error)

	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnStripStart(context.Context, int)                                   {}
func (NoopGenerationHooks) OnStripComplete(context.Context, int, int, time.Duration, error)     {}
func (NoopGenerationHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks. A nil h is ignored.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	cacheHooks = NoopCacheHooks{}
}
