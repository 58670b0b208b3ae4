package piece

import (
	"errors"
	"fmt"
	"math/rand"
)

// Registry holds the fixed piece-template set and provides lookup and
// random selection. Definitions are validated once at construction and
// never mutated afterwards; spawning always deep-copies the template.
type Registry struct {
	defs  []Def
	byKey map[string]*Def
}

// NewRegistry creates a registry from piece definitions, validating each.
func NewRegistry(defs []Def) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("no piece definitions")
	}

	registry := &Registry{
		defs:  defs,
		byKey: make(map[string]*Def),
	}
	seenValues := make(map[int]string)
	for i := range defs {
		def := &registry.defs[i]
		if err := def.validate(); err != nil {
			return nil, err
		}
		if _, ok := registry.byKey[def.Key]; ok {
			return nil, fmt.Errorf("duplicate piece key %q", def.Key)
		}
		if other, ok := seenValues[def.Value]; ok {
			return nil, fmt.Errorf("piece %q reuses cell value %d of piece %q", def.Key, def.Value, other)
		}
		registry.byKey[def.Key] = def
		seenValues[def.Value] = def.Key
	}
	return registry, nil
}

// LoadRegistry loads and creates a registry from the embedded pieces.json.
func LoadRegistry() (*Registry, error) {
	defs, err := LoadDefs()
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs)
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Random selects a piece definition uniformly at random.
func (r *Registry) Random(rng *rand.Rand) *Def {
	return &r.defs[rng.Intn(len(r.defs))]
}

// Get returns the definition with the given key, or nil if not found.
func (r *Registry) Get(key string) *Def {
	return r.byKey[key]
}

// All returns all piece definitions.
func (r *Registry) All() []Def {
	return r.defs
}

// Count returns the number of piece types in the registry.
func (r *Registry) Count() int {
	return len(r.defs)
}
