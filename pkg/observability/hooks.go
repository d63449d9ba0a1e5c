// Package observability provides hooks for metrics and tracing.
//
// Hooks let an embedding program observe graph generation without this
// module depending on a metrics backend. Register implementations once at
// startup; the defaults do nothing.
//
//	observability.SetPipelineHooks(&promHooks{})
//	observability.SetCacheHooks(&promHooks{})
//
// The pipeline and the SVG renderer emit events:
//
//	observability.Pipeline().OnExtractComplete(ctx, input, tags, duration, err)
//	observability.Cache().OnCacheHit(ctx, "svg")
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from graph generation.
type PipelineHooks interface {
	// OnExtractComplete fires once the document is loaded and grouped.
	OnExtractComplete(ctx context.Context, input string, tags int, duration time.Duration, err error)

	// OnTagRendered fires for every tag that produced a graph.
	OnTagRendered(ctx context.Context, tag string, edges int, duration time.Duration)

	// OnTagSkipped fires for tags whose operations reference nothing.
	OnTagSkipped(ctx context.Context, tag string)
}

// CacheHooks receives events from render cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExtractComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnTagRendered(context.Context, string, int, time.Duration)             {}
func (NoopPipelineHooks) OnTagSkipped(context.Context, string)                                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
