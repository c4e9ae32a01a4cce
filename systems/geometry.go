package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/config"
)

// Dish is the circular arena. It does not change during a session.
type Dish struct {
	Center r2.Vec
	Radius float64

	BoundaryRadius float64 // containment radius
	SpawnRadius    float64 // sampling radius, slightly inside the boundary
	BounceDamping  float64 // velocity scale after a boundary reflection
}

// NewDish builds the dish from configuration.
func NewDish(cfg *config.Config) Dish {
	return Dish{
		Center:         r2.Vec{X: cfg.Derived.CenterX, Y: cfg.Derived.CenterY},
		Radius:         cfg.Dish.Radius,
		BoundaryRadius: cfg.Derived.BoundaryRadius,
		SpawnRadius:    cfg.Derived.SpawnRadius,
		BounceDamping:  cfg.Dish.BounceDamping,
	}
}

// RandomPoint samples a point uniformly by area inside the spawn radius.
func (d Dish) RandomPoint(rng *rand.Rand) r2.Vec {
	return RandomPointInCircle(rng, d.Center, d.SpawnRadius)
}

// ClampSpawn pulls p inside the spawn radius.
func (d Dish) ClampSpawn(p r2.Vec) r2.Vec {
	return ClampToCircle(p, d.Center, d.SpawnRadius)
}

// Contains reports whether p lies within the containment radius.
func (d Dish) Contains(p r2.Vec) bool {
	return r2.Norm2(r2.Sub(p, d.Center)) <= d.BoundaryRadius*d.BoundaryRadius
}

// RandomPointInCircle samples a point uniformly by area.
// The sqrt on the radial draw keeps the density flat toward the rim.
func RandomPointInCircle(rng *rand.Rand, center r2.Vec, radius float64) r2.Vec {
	r := radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return r2.Add(center, FromAngle(theta, r))
}

// ClampToCircle returns p moved onto the circle if it lies outside it.
func ClampToCircle(p, center r2.Vec, radius float64) r2.Vec {
	d := r2.Sub(p, center)
	if r2.Norm2(d) <= radius*radius {
		return p
	}
	return r2.Add(center, SetLength(d, radius))
}

// OffsetAround returns a point at a random angle and a radius in [minR, maxR] from origin.
func OffsetAround(rng *rand.Rand, origin r2.Vec, minR, maxR float64) r2.Vec {
	theta := rng.Float64() * 2 * math.Pi
	r := minR + rng.Float64()*(maxR-minR)
	return r2.Add(origin, FromAngle(theta, r))
}
