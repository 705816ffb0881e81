// Package component provides the component interface definitions.
// It is the lowest-level package and depends on no other package in the
// module, which keeps the dependency graph acyclic.
package component

import "context"

// Component is the unified lifecycle contract: Init → Start → Stop.
type Component interface {
	// Name returns the unique component identifier used for dependency
	// declarations and lookup.
	Name() string

	// DependsOn declares the names of components that must be initialized
	// before this one. Optional dependencies use the "optional:" prefix.
	DependsOn() []string

	// Init creates resources but does not start any outward-facing work.
	// Components read their own configuration through the loader.
	Init(ctx context.Context, loader ConfigLoader) error

	// Start begins active work (if any).
	Start(ctx context.Context) error

	// Stop releases resources. Must be idempotent.
	Stop(ctx context.Context) error
}
