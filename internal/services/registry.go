package services

import "sync"

// Registry scopes one Workflow instance to one owner id, so every
// request in a session works against the same draft and mode. Nothing
// crosses sessions: each entry is private to its owner.
type Registry struct {
	mu      sync.Mutex
	byOwner map[string]*Workflow
	factory func() *Workflow
}

func NewRegistry(factory func() *Workflow) *Registry {
	return &Registry{
		byOwner: make(map[string]*Workflow),
		factory: factory,
	}
}

func (r *Registry) GetOrCreate(ownerID string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.byOwner[ownerID]; ok {
		return w
	}
	w := r.factory()
	r.byOwner[ownerID] = w
	return w
}
