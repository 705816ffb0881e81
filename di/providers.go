// Package di provides samber/do providers wiring the configuration loader
// and the emitter component into an injector.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/asyncware/go-emitter/config"
	"github.com/asyncware/go-emitter/emitter"
)

// ProvideEmitterComponent builds and initializes the emitter component from
// the *config.Loader registered in the injector.
//
//	injector := do.New()
//	do.Provide(injector, config.ProvideLoader(config.ProvideLoaderOptions{...}))
//	do.Provide(injector, di.ProvideEmitterComponent())
//	comp := do.MustInvoke[*emitter.Component](injector)
func ProvideEmitterComponent() func(do.Injector) (*emitter.Component, error) {
	return func(i do.Injector) (*emitter.Component, error) {
		loader, err := do.Invoke[*config.Loader](i)
		if err != nil {
			return nil, fmt.Errorf("emitter component requires a config loader: %w", err)
		}

		comp := emitter.NewComponent()
		if err := comp.Init(context.Background(), loader); err != nil {
			return nil, fmt.Errorf("emitter component init failed: %w", err)
		}
		return comp, nil
	}
}

// ProvideEmitter exposes the emitter.Emitter of an initialized component.
func ProvideEmitter() func(do.Injector) (emitter.Emitter, error) {
	return func(i do.Injector) (emitter.Emitter, error) {
		comp, err := do.Invoke[*emitter.Component](i)
		if err != nil {
			return nil, err
		}
		em := comp.GetEmitter()
		if em == nil {
			return nil, fmt.Errorf("emitter component is disabled")
		}
		return em, nil
	}
}

// RegisterEmitterValue registers an already-built emitter (tests, embedding).
func RegisterEmitterValue(injector do.Injector, em emitter.Emitter) {
	do.ProvideValue(injector, em)
}
