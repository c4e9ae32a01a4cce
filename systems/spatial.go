package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/components"
)

// SpatialGrid buckets candidate indices by position for radius-limited
// nearest searches. It covers the square around the dish; points outside
// fall into the nearest edge cell, so every candidate stays findable.
type SpatialGrid struct {
	cellSize float64
	minX     float64
	minY     float64
	cols     int
	rows     int
	cells    [][]int
	cands    []Candidate
}

// NewSpatialGrid creates a grid covering the dish with square cells.
func NewSpatialGrid(dish Dish, cellSize float64) *SpatialGrid {
	side := 2 * dish.Radius
	n := int(math.Ceil(side/cellSize)) + 1

	cells := make([][]int, n*n)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		minX:     dish.Center.X - dish.Radius,
		minY:     dish.Center.Y - dish.Radius,
		cols:     n,
		rows:     n,
		cells:    cells,
	}
}

// Rebuild indexes cands. The grid keeps a reference to the slice; results
// of later searches index into it.
func (g *SpatialGrid) Rebuild(cands []Candidate) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.cands = cands
	for i := range cands {
		col, row := g.cell(cands[i].Pos)
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// Candidates returns the indexed candidate slice.
func (g *SpatialGrid) Candidates() []Candidate {
	return g.cands
}

// NearestWithin returns the index of the accepted candidate closest to p
// with squared distance below radius², and that squared distance, or -1 if
// none qualifies. Ties keep the lowest candidate index, matching Nearest.
func (g *SpatialGrid) NearestWithin(p r2.Vec, radius float64, accept func(*components.Bacterium) bool) (int, float64) {
	best := -1
	bestDistSq := radius * radius

	c0, r0 := g.cell(r2.Vec{X: p.X - radius, Y: p.Y - radius})
	c1, r1 := g.cell(r2.Vec{X: p.X + radius, Y: p.Y + radius})

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				c := &g.cands[i]
				if !accept(c.State) {
					continue
				}
				d := r2.Norm2(r2.Sub(c.Pos, p))
				if d < bestDistSq || (d == bestDistSq && best >= 0 && i < best) {
					best = i
					bestDistSq = d
				}
			}
		}
	}

	if best < 0 {
		return -1, math.Inf(1)
	}
	return best, bestDistSq
}

// cell returns the clamped grid cell containing p.
func (g *SpatialGrid) cell(p r2.Vec) (int, int) {
	col := int(math.Floor((p.X - g.minX) / g.cellSize))
	row := int(math.Floor((p.Y - g.minY) / g.cellSize))
	return clampInt(col, 0, g.cols-1), clampInt(row, 0, g.rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
