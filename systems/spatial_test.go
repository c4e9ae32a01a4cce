package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"
)

func TestSpatialGridNearestWithin(t *testing.T) {
	d := testDish()
	c := d.Center
	cands := candidatesAt(
		r2.Vec{X: c.X + 100, Y: c.Y},
		r2.Vec{X: c.X + 30, Y: c.Y},
		r2.Vec{X: c.X, Y: c.Y - 30},
		r2.Vec{X: c.X - 1000, Y: c.Y},
	)

	grid := NewSpatialGrid(d, 64)
	grid.Rebuild(cands)

	tests := []struct {
		name   string
		at     r2.Vec
		radius float64
		want   int
	}{
		{"tie keeps lowest index", c, 50, 1},
		{"nothing in range", c, 20, -1},
		{"boundary is exclusive", c, 30, -1},
		{"far outside the dish", r2.Vec{X: c.X - 990, Y: c.Y}, 20, 3},
		{"large radius", r2.Vec{X: c.X + 90, Y: c.Y}, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if idx, _ := grid.NearestWithin(tt.at, tt.radius, Active); idx != tt.want {
				t.Errorf("NearestWithin = %d, want %d", idx, tt.want)
			}
		})
	}
}

func TestSpatialGridRebuildClears(t *testing.T) {
	d := testDish()
	grid := NewSpatialGrid(d, 64)
	grid.Rebuild(candidatesAt(d.Center))
	grid.Rebuild(nil)

	if idx, _ := grid.NearestWithin(d.Center, 100, Active); idx != -1 {
		t.Errorf("NearestWithin after empty rebuild = %d, want -1", idx)
	}
}

func TestSpatialGridMatchesNearestProperty(t *testing.T) {
	d := testDish()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		points := make([]r2.Vec, n)
		for i := range points {
			points[i] = r2.Vec{
				X: d.Center.X + rapid.Float64Range(-500, 500).Draw(t, "x"),
				Y: d.Center.Y + rapid.Float64Range(-500, 500).Draw(t, "y"),
			}
		}
		cands := candidatesAt(points...)
		for i := range cands {
			cands[i].State.Infected = rapid.Bool().Draw(t, "infected")
		}
		p := r2.Vec{
			X: d.Center.X + rapid.Float64Range(-500, 500).Draw(t, "px"),
			Y: d.Center.Y + rapid.Float64Range(-500, 500).Draw(t, "py"),
		}
		radius := rapid.Float64Range(1, 400).Draw(t, "radius")
		cell := rapid.Float64Range(16, 200).Draw(t, "cell")

		grid := NewSpatialGrid(d, cell)
		grid.Rebuild(cands)

		want, wantDist := Nearest(cands, p, ActiveUninfected)
		if want >= 0 && wantDist >= radius*radius {
			want = -1
		}
		got, gotDist := grid.NearestWithin(p, radius, ActiveUninfected)
		if got != want {
			t.Fatalf("NearestWithin = %d, brute force = %d", got, want)
		}
		if got >= 0 && gotDist != wantDist {
			t.Fatalf("distance = %v, want %v", gotDist, wantDist)
		}
	})
}
