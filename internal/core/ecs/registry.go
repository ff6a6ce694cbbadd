package ecs

// Registry tracks all component stores of an aggregate and supports bulk
// cleanup on entity destroy.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
	}
}

// Register adds component stores to the registry.
func (r *Registry) Register(stores ...Removable) {
	r.stores = append(r.stores, stores...)
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(h EntityHandle) {
	for _, s := range r.stores {
		s.RemoveEntity(h)
	}
}

// Empty reports whether every registered store is empty.
func (r *Registry) Empty() bool {
	for _, s := range r.stores {
		if s.Len() != 0 {
			return false
		}
	}
	return true
}

func (r *Registry) Len() int { return len(r.stores) }
