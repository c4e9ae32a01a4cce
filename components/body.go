package components

import "github.com/pthm-cable/phage/config"

// Body holds physical properties of an entity.
type Body struct {
	Radius float64
}

// Motion holds integrator parameters for acceleration-driven entities.
// Bacteria drift by direct velocity jitter and carry no Motion.
type Motion struct {
	AccelX, AccelY float64 // acceleration input for the current tick
	Drag           float64 // deceleration applied when acceleration is zero
	MaxSpeed       float64 // velocity magnitude cap
}

// PlayerMotion returns the phage's integrator parameters.
func PlayerMotion(cfg *config.PlayerConfig) Motion {
	return Motion{Drag: cfg.Drag, MaxSpeed: cfg.MaxSpeed}
}

// HelperMotion returns a helper's integrator parameters.
func HelperMotion(cfg *config.HelpersConfig) Motion {
	return Motion{Drag: cfg.Drag, MaxSpeed: cfg.MaxSpeed}
}
