package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/systems"
)

// Autopilot plays the phage for headless runs: it steers toward the nearest
// bacterium and picks it once comfortably inside attach range.
type Autopilot struct {
	pickRange float64
}

// NewAutopilot creates an autopilot for the given configuration.
func NewAutopilot(cfg *config.Config) *Autopilot {
	return &Autopilot{pickRange: cfg.Injection.AttachRange * 0.8}
}

// Next returns the input for the next step given the latest snapshot.
func (a *Autopilot) Next(s *Snapshot) Input {
	if s.GameOver || s.Injection.Active {
		return Input{}
	}

	best := -1
	bestDistSq := math.Inf(1)
	for i := range s.Bacteria {
		if s.Bacteria[i].Infected {
			continue
		}
		d := r2.Norm2(r2.Sub(s.Bacteria[i].Pos, s.Player.Pos))
		if d < bestDistSq {
			best = i
			bestDistSq = d
		}
	}
	if best < 0 {
		return Input{}
	}

	target := s.Bacteria[best].Pos
	in := Input{Move: systems.Normalize(r2.Sub(target, s.Player.Pos))}
	if bestDistSq <= a.pickRange*a.pickRange {
		in.Pick = &target
	}
	return in
}
