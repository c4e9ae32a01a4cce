package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// Angle functions

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// TurnToward rotates heading toward target by at most rate*dt radians.
func TurnToward(heading, target, rate, dt float64) float64 {
	diff := normalizeAngle(target - heading)
	step := rate * dt
	if math.Abs(diff) <= step {
		return normalizeAngle(target)
	}
	if diff > 0 {
		return normalizeAngle(heading + step)
	}
	return normalizeAngle(heading - step)
}

// Vector functions

// Normalize returns the unit vector of v, or the zero vector when v is zero.
// r2.Unit returns NaN components for a zero input.
func Normalize(v r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return r2.Vec{}
	}
	return r2.Unit(v)
}

// SetLength returns v rescaled to length l, keeping its direction.
func SetLength(v r2.Vec, l float64) r2.Vec {
	return r2.Scale(l, Normalize(v))
}

// ClampLength limits the magnitude of v to maxLen.
func ClampLength(v r2.Vec, maxLen float64) r2.Vec {
	if r2.Norm2(v) <= maxLen*maxLen {
		return v
	}
	return SetLength(v, maxLen)
}

// Perpendicular returns v rotated 90 degrees counter-clockwise.
func Perpendicular(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// FromAngle returns a vector of the given length along angle.
func FromAngle(angle, length float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Angle returns the heading of v in radians.
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Reflect returns v reflected off a surface with unit normal n.
// v' = v - 2 * dot(v, n) * n
func Reflect(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}

// Probability functions

// PerTickChance converts a per-second event probability into a per-tick one
// so the event rate does not depend on frame rate.
func PerTickChance(perSec, dt float64) float64 {
	p := clamp01(perSec)
	if p >= 1 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return clamp01(1 - math.Pow(1-p, dt))
}
