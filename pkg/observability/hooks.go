// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let the CLI or an embedding service observe annotation builds,
// anchor resolution, tooltip activity, rendering and cache usage without
// the core packages depending on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnnotationHooks(&myAnnotationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Annotations().OnBuild(ctx, built, dropped)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Annotation Hooks
// =============================================================================

// AnnotationHooks receives events from the annotation subsystem.
type AnnotationHooks interface {
	// OnBuild is called after a collection rebuild.
	OnBuild(ctx context.Context, built, dropped int)

	// OnResolve is called for every resolved anchor. complete is false when
	// at least one coordinate stayed undefined.
	OnResolve(ctx context.Context, name string, complete bool)

	// OnTooltipShow is called when an annotation tooltip becomes visible.
	OnTooltipShow(ctx context.Context, name string)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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

// NoopAnnotationHooks is a no-op implementation of AnnotationHooks.
type NoopAnnotationHooks struct{}

func (NoopAnnotationHooks) OnBuild(context.Context, int, int)       {}
func (NoopAnnotationHooks) OnResolve(context.Context, string, bool) {}
func (NoopAnnotationHooks) OnTooltipShow(context.Context, string)   {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	annotationHooks AnnotationHooks = NoopAnnotationHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetAnnotationHooks registers custom annotation hooks.
func SetAnnotationHooks(h AnnotationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		annotationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Annotations returns the registered annotation hooks.
func Annotations() AnnotationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return annotationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
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
	annotationHooks = NoopAnnotationHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
