// Package systems contains the per-tick simulation rules: geometry, motion,
// behavior, the injection state machine and the reproduction controller.
// Functions take their inputs explicitly and never reach into session state.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/components"
)

// Integrate advances an acceleration-driven entity by dt seconds.
// With a non-zero acceleration input the velocity accelerates; otherwise drag
// bleeds speed toward zero. Speed is then capped and the position advanced.
func Integrate(pos *components.Position, vel *components.Velocity, m *components.Motion, dt float64) {
	v := vel.Vec()
	accel := r2.Vec{X: m.AccelX, Y: m.AccelY}

	if accel.X == 0 && accel.Y == 0 {
		v = applyDrag(v, m.Drag*dt)
	} else {
		v = r2.Add(v, r2.Scale(dt, accel))
	}

	v = ClampLength(v, m.MaxSpeed)
	vel.Set(v)
	pos.Set(r2.Add(pos.Vec(), r2.Scale(dt, v)))
}

// Drift advances an entity by its current velocity.
func Drift(pos *components.Position, vel *components.Velocity, dt float64) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// applyDrag reduces the speed of v by amount without reversing it.
func applyDrag(v r2.Vec, amount float64) r2.Vec {
	speed := r2.Norm(v)
	if speed <= amount || speed == 0 {
		return r2.Vec{}
	}
	return r2.Scale((speed-amount)/speed, v)
}

// ConstrainToDish keeps an entity inside the dish boundary.
// An entity past the boundary is pulled back onto it along the radial
// direction, its outward velocity is reflected about the normal and the
// result scaled by the dish's bounce damping. Reports whether a bounce happened.
func ConstrainToDish(pos *components.Position, vel *components.Velocity, dish Dish) bool {
	d := r2.Sub(pos.Vec(), dish.Center)
	if r2.Norm(d) <= dish.BoundaryRadius {
		return false
	}

	normal := Normalize(d)
	pos.Set(boundaryPoint(dish, normal))

	v := vel.Vec()
	if r2.Dot(v, normal) > 0 {
		v = Reflect(v, normal)
	}
	vel.Set(r2.Scale(dish.BounceDamping, v))
	return true
}

// boundaryPoint returns the point along normal that is on the boundary, or
// the closest one inside it when rounding would land it just outside.
func boundaryPoint(dish Dish, normal r2.Vec) r2.Vec {
	r := dish.BoundaryRadius
	p := r2.Add(dish.Center, r2.Scale(r, normal))
	for r > 0 && r2.Norm(r2.Sub(p, dish.Center)) > dish.BoundaryRadius {
		r = math.Nextafter(r, 0)
		p = r2.Add(dish.Center, r2.Scale(r, normal))
	}
	return p
}
