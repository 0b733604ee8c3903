package renderable

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
)

type registry struct {
	mu    *sync.Mutex
	items []Renderable
}

// Registry is an append-only, ordered list of Renderables. Index 0 is the planet; asteroids follow.
type Registry interface {
	// Add appends a renderable and returns its index.
	//
	// Parameters:
	//   - r: the renderable to append
	//
	// Returns:
	//   - int: the index of the appended renderable
	Add(r Renderable) int

	// At returns the renderable at index i, or nil when out of range.
	//
	// Parameters:
	//   - i: the index
	//
	// Returns:
	//   - Renderable: the renderable or nil
	At(i int) Renderable

	// Len returns the number of renderables.
	//
	// Returns:
	//   - int: the count
	Len() int

	// All returns a copy of the renderable list in insertion order.
	//
	// Returns:
	//   - []Renderable: the renderables
	All() []Renderable

	// DrawItems returns the draw items for the first asteroidCount+1 renderables. The count is
	// checked after each draw, so at least one item is returned when the registry is non-empty.
	//
	// Parameters:
	//   - asteroidCount: the configured asteroid count
	//
	// Returns:
	//   - []renderer.DrawItem: the items to draw, in order
	DrawItems(asteroidCount int) []renderer.DrawItem

	// Release releases every renderable and empties the registry.
	Release()
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry: the new registry
func NewRegistry() Registry {
	return &registry{mu: &sync.Mutex{}}
}

func (g *registry) Add(r Renderable) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = append(g.items, r)
	return len(g.items) - 1
}

func (g *registry) At(i int) Renderable {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.items) {
		return nil
	}
	return g.items[i]
}

func (g *registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

func (g *registry) All() []Renderable {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Renderable, len(g.items))
	copy(out, g.items)
	return out
}

func (g *registry) DrawItems(asteroidCount int) []renderer.DrawItem {
	g.mu.Lock()
	defer g.mu.Unlock()

	items := make([]renderer.DrawItem, 0, min(len(g.items), max(asteroidCount, 0)+1))
	count := 0
	for _, r := range g.items {
		items = append(items, r.DrawItem())
		count++
		if count > asteroidCount {
			break
		}
	}
	return items
}

func (g *registry) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.items {
		r.Release()
	}
	g.items = nil
}
