package config

import (
	"fmt"

	"github.com/samber/do/v2"
)

// ProvideLoaderOptions configures the Loader provider.
type ProvideLoaderOptions struct {
	ConfigFiles []string // YAML files merged in order
	EnvPrefix   string   // environment variable prefix
}

// ProvideLoader creates a Loader provider for a do injector. Config is the
// bottom-most component and has no dependencies.
//
//	do.Provide(injector, config.ProvideLoader(config.ProvideLoaderOptions{
//	    ConfigFiles: []string{"configs/app.yaml"},
//	    EnvPrefix:   "APP",
//	}))
//	loader := do.MustInvoke[*config.Loader](injector)
func ProvideLoader(opts ProvideLoaderOptions) func(do.Injector) (*Loader, error) {
	return func(i do.Injector) (*Loader, error) {
		loader := NewLoader().WithEnvPrefix(opts.EnvPrefix)
		for _, f := range opts.ConfigFiles {
			if err := loader.LoadFile(f); err != nil {
				return nil, fmt.Errorf("config loader build failed: %w", err)
			}
		}
		return loader, nil
	}
}

// ProvideLoaderValue registers an already-built Loader (tests, special cases).
func ProvideLoaderValue(loader *Loader) func(do.Injector) (*Loader, error) {
	return func(i do.Injector) (*Loader, error) {
		return loader, nil
	}
}
