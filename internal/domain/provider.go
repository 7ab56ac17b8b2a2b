package domain

import (
	"context"
	"sync"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider is the port implemented by each provider adapter. An
// adapter translates the canonical search request into its provider's wire
// format, invokes it, and maps the response into FlightOffer values.
type FlightProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Search queries the provider for offers matching the request.
	// Implementations must bound the outbound call with their own timeout
	// and must not retry internally.
	Search(ctx context.Context, req SearchRequest) ([]FlightOffer, error)
}

// ProviderRegistry holds the registered providers in registration order.
// Registration order is significant: the aggregator merges contributions in
// this order, which fixes tie-breaking for equally priced offers.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers []FlightProvider
	byName    map[string]FlightProvider
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		byName: make(map[string]FlightProvider),
	}
}

// Register adds a provider. Re-registering a name replaces the previous
// entry but keeps its position.
func (r *ProviderRegistry) Register(p FlightProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.byName[name]; exists {
		for i, existing := range r.providers {
			if existing.Name() == name {
				r.providers[i] = p
				break
			}
		}
	} else {
		r.providers = append(r.providers, p)
	}
	r.byName[name] = p
}

// All returns the providers in registration order.
func (r *ProviderRegistry) All() []FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]FlightProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Get looks up a provider by name.
func (r *ProviderRegistry) Get(name string) (FlightProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byName[name]
	return p, ok
}

// Len returns the number of registered providers.
func (r *ProviderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}
