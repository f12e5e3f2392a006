package jsonproc

import (
	"slices"
	"sync"
)

// Registry is an explicit collection of processors keyed by identifier.
// There is no package-level instance; construct one where a shared
// lookup is actually needed.
type Registry struct {
	mu   sync.Mutex
	byID map[string]*Processor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Processor)}
}

// Add stores p under its identifier. Processors built without
// [WithIdentifier] are rejected with ErrNoIdentifier; a taken identifier
// is rejected with a *DuplicateIdentifierError.
func (r *Registry) Add(p *Processor) error {
	id := p.Identifier()
	if id == "" {
		return ErrNoIdentifier
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return &DuplicateIdentifierError{Identifier: id}
	}
	r.byID[id] = p
	return nil
}

// Lookup returns the processor stored under id, or a
// *UnknownIdentifierError.
func (r *Registry) Lookup(id string) (*Processor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, &UnknownIdentifierError{Identifier: id}
}

// Identifiers returns the registered identifiers, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
