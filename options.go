package kiln

import (
	"log/slog"

	"github.com/kiln-di/kiln/internal/engine"
)

// ResolveHook observes one top-level resolution: the capability name, how
// long it took, and the outcome.
type ResolveHook = engine.ResolveHook

// DisposeHook observes the teardown of one produced instance.
type DisposeHook = engine.DisposeHook

type engineConfig struct {
	logger    *slog.Logger
	onResolve []ResolveHook
	onDispose []DisposeHook
}

func newEngineConfig() *engineConfig {
	return &engineConfig{logger: slog.Default()}
}

// Option configures an engine at creation time.
type Option func(*engineConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *engineConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithDisposeObserver(hook DisposeHook) Option {
	return func(cfg *engineConfig) {
		cfg.onDispose = append(cfg.onDispose, hook)
	}
}
