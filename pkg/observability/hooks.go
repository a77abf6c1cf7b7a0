// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about sheet presentation, layout passes, drag releases,
// scroll arbitration, and configuration loading.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages stay
// free of any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSheetHooks(&mySheetHooks{})
//	    observability.SetConfigHooks(&myConfigHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sheet().OnRelease(ctx, id, velocity, "dismiss")
//
// Hooks are invoked on the UI loop. Implementations must not block.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sheet Hooks
// =============================================================================

// SheetHooks receives events from a presented sheet.
type SheetHooks interface {
	// OnPresent records the start of a presentation transition.
	OnPresent(ctx context.Context, sheetID string)

	// OnLayout records a layout pass.
	OnLayout(ctx context.Context, sheetID string, topY, height float64, animated bool)

	// OnRelease records a drag release and its outcome ("snap" or "dismiss").
	OnRelease(ctx context.Context, sheetID string, velocity float64, decision string)

	// OnScrollMode records an embedded scroll arbitration.
	OnScrollMode(ctx context.Context, sheetID string, mode string, offset float64)

	// OnDismiss records a completed dismissal. cause is "drag", "tap", or "host".
	OnDismiss(ctx context.Context, sheetID string, cause string, shown time.Duration)
}

// =============================================================================
// Config Hooks
// =============================================================================

// ConfigHooks receives events from configuration loading.
type ConfigHooks interface {
	// OnConfigLoad records a load or reload of a sheet config file.
	OnConfigLoad(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSheetHooks is a no-op implementation of SheetHooks.
type NoopSheetHooks struct{}

func (NoopSheetHooks) OnPresent(context.Context, string)                        {}
func (NoopSheetHooks) OnLayout(context.Context, string, float64, float64, bool) {}
func (NoopSheetHooks) OnRelease(context.Context, string, float64, string)       {}
func (NoopSheetHooks) OnScrollMode(context.Context, string, string, float64)    {}
func (NoopSheetHooks) OnDismiss(context.Context, string, string, time.Duration) {}

// NoopConfigHooks is a no-op implementation of ConfigHooks.
type NoopConfigHooks struct{}

func (NoopConfigHooks) OnConfigLoad(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sheetHooks  SheetHooks  = NoopSheetHooks{}
	configHooks ConfigHooks = NoopConfigHooks{}
	hooksMu     sync.RWMutex
)

// SetSheetHooks registers custom sheet hooks.
// This should be called once at application startup before presenting.
func SetSheetHooks(h SheetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sheetHooks = h
	}
}

// SetConfigHooks registers custom config hooks.
func SetConfigHooks(h ConfigHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		configHooks = h
	}
}

// Sheet returns the registered sheet hooks.
func Sheet() SheetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sheetHooks
}

// Config returns the registered config hooks.
func Config() ConfigHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return configHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sheetHooks = NoopSheetHooks{}
	configHooks = NoopConfigHooks{}
}
