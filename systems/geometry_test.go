package systems

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/phage/config"
)

func testDish() Dish {
	return NewDish(config.Default())
}

func TestNewDish(t *testing.T) {
	cfg := config.Default()
	d := NewDish(cfg)

	if d.Center.X != cfg.Derived.CenterX || d.Center.Y != cfg.Derived.CenterY {
		t.Errorf("center = %v", d.Center)
	}
	if d.BoundaryRadius != cfg.Dish.Radius*0.93 || d.SpawnRadius != cfg.Dish.Radius*0.92 {
		t.Errorf("radii = %v/%v", d.BoundaryRadius, d.SpawnRadius)
	}
}

func TestRandomPointInCircleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		center := r2.Vec{
			X: rapid.Float64Range(-500, 500).Draw(t, "cx"),
			Y: rapid.Float64Range(-500, 500).Draw(t, "cy"),
		}
		radius := rapid.Float64Range(0, 400).Draw(t, "r")

		p := RandomPointInCircle(rng, center, radius)
		if d := r2.Norm(r2.Sub(p, center)); d > radius+1e-9 {
			t.Fatalf("point at distance %v outside radius %v", d, radius)
		}
	})
}

func TestClampToCircle(t *testing.T) {
	center := r2.Vec{X: 10, Y: 10}

	inside := r2.Vec{X: 12, Y: 10}
	if got := ClampToCircle(inside, center, 5); got != inside {
		t.Errorf("inside point moved to %v", got)
	}

	got := ClampToCircle(r2.Vec{X: 30, Y: 10}, center, 5)
	if r2.Norm(r2.Sub(got, r2.Vec{X: 15, Y: 10})) > 1e-9 {
		t.Errorf("ClampToCircle = %v, want (15, 10)", got)
	}
}

func TestOffsetAroundProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		minR := rapid.Float64Range(0, 50).Draw(t, "min")
		maxR := minR + rapid.Float64Range(0, 50).Draw(t, "span")
		origin := r2.Vec{X: 100, Y: -40}

		d := r2.Norm(r2.Sub(OffsetAround(rng, origin, minR, maxR), origin))
		if d < minR-1e-9 || d > maxR+1e-9 {
			t.Fatalf("offset %v outside [%v, %v]", d, minR, maxR)
		}
	})
}

func TestDishRandomPointInsideSpawnRadius(t *testing.T) {
	d := testDish()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := d.RandomPoint(rng)
		if r2.Norm(r2.Sub(p, d.Center)) > d.SpawnRadius+1e-9 {
			t.Fatalf("point %v outside spawn radius", p)
		}
		if !d.Contains(p) {
			t.Fatalf("point %v outside boundary", p)
		}
	}
}
