package components

// Player tags the single phage entity.
type Player struct{}

// Bacterium holds bacterium state.
// Lysed bacteria stay in the world until end-of-tick cleanup but are inactive.
type Bacterium struct {
	Scale    float64 // size hint for presentation, fixed at spawn
	Infected bool    // true while the phage is injecting this bacterium
	Lysed    bool
}

// Active reports whether the bacterium still takes part in the simulation.
func (b *Bacterium) Active() bool {
	return !b.Lysed
}

// Helper holds helper AI memory.
type Helper struct {
	Role        Role    // fixed at spawn
	Cooldown    float64 // seconds until the next strike is allowed
	WanderAngle float64 // radians, drifts while no target is in range
}
