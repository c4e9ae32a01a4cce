package game

import "gonum.org/v1/gonum/spatial/r2"

// Input is what the host supplies to one simulation step.
type Input struct {
	// Move is the directional intent, each axis in [-1, 1]. It is normalized
	// before use, so diagonals are not faster.
	Move r2.Vec

	// Pick is an edge-triggered attach request at a world point, nil if none.
	Pick *r2.Vec

	// IntroActive reports that the intro overlay is showing. Picks are
	// ignored and reproduction is suspended while it is set.
	IntroActive bool
}

// PickAt returns an Input that requests an attach at (x, y).
func PickAt(x, y float64) Input {
	return Input{Pick: &r2.Vec{X: x, Y: y}}
}
