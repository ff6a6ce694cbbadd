package system

import (
	"math"

	"github.com/l1jgo/vecs/internal/core/ecs"
)

// grid is a cell-based spatial index. With the cell size at least the query
// radius, a 3x3 neighbourhood of cells covers every candidate.
// Accessed only from the tick loop, no locks.
type grid struct {
	size  float64
	cells map[cellKey][]ecs.EntityHandle
}

type cellKey struct {
	cx int64
	cy int64
}

func newGrid(size float64) *grid {
	return &grid{size: size, cells: make(map[cellKey][]ecs.EntityHandle)}
}

func (g *grid) key(x, y float64) cellKey {
	return cellKey{cx: int64(math.Floor(x / g.size)), cy: int64(math.Floor(y / g.size))}
}

func (g *grid) add(h ecs.EntityHandle, x, y float64) {
	k := g.key(x, y)
	g.cells[k] = append(g.cells[k], h)
}

// reset empties the grid, keeping cell slices for reuse.
func (g *grid) reset() {
	for k, c := range g.cells {
		g.cells[k] = c[:0]
	}
}

// nearby calls fn for every handle in the 3x3 cells around (x, y). Callers do
// the exact distance check.
func (g *grid) nearby(x, y float64, fn func(ecs.EntityHandle)) {
	c := g.key(x, y)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, h := range g.cells[cellKey{cx: c.cx + dx, cy: c.cy + dy}] {
				fn(h)
			}
		}
	}
}
