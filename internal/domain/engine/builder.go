// Package engine holds the core provisioning model: steps, the dependency
// graph, and the providers that compile manifest sections into steps.
package engine

import "errors"

// Builder assembles providers' steps into a validated Graph.
type Builder struct {
	providers []Provider
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{providers: make([]Provider, 0)}
}

// RegisterProvider adds a provider. Providers compile in registration order.
func (b *Builder) RegisterProvider(provider Provider) {
	b.providers = append(b.providers, provider)
}

// Providers returns all registered providers.
func (b *Builder) Providers() []Provider {
	return b.providers
}

// Build compiles every provider and returns a validated Graph.
// Registration-time structural errors (duplicate IDs, missing dependencies,
// cycles) abort the build; no step executes afterwards.
func (b *Builder) Build(ctx CompileContext) (*Graph, error) {
	graph := NewGraph()

	for _, provider := range b.providers {
		steps, err := provider.Compile(ctx)
		if err != nil {
			return nil, NewProviderFailedError(provider.Name(), err)
		}
		for _, step := range steps {
			if err := graph.Add(step); err != nil {
				return nil, NewStepDuplicateError(provider.Name(), step.ID().String())
			}
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, NewDependencyMissingError(err)
	}

	// Cycles surface here, before any plan or apply.
	if _, err := graph.TopologicalSort(); err != nil {
		if errors.Is(err, ErrCyclicDependency) {
			return nil, NewCyclicDependencyError(err)
		}
		return nil, err
	}

	return graph, nil
}
