package sim

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new instance of a simulation's entry-point table.
type Factory func() Simulation

// Info contains metadata about a registered simulation.
type Info struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry. Typically called
// from a simulation package's init() function. Panics if the ID is
// already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("sim: %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered simulations, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Exists checks whether a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// lookup resolves a factory by ID.
func lookup(id string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	return f, ok
}
