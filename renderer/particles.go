package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/telemetry"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleLysis       ParticleType = iota // debris from a bacterium lysed by the phage
	ParticleStrike                          // debris from a striker kill
	ParticleHelperSpawn                     // sparkle where a helper appears
	ParticleDivision                        // faint puff at a new bacterium
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32 // units per second
	Life       float32 // seconds remaining
	MaxLife    float32
	Type       ParticleType
	Size       float32
}

// ParticleSystem turns simulation events into short-lived particles.
// It only reads events and never influences the simulation.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 600),
		maxParticles: 600,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Emit spawns particles for the events of one tick.
func (s *ParticleSystem) Emit(events []telemetry.Event) {
	for _, ev := range events {
		x, y := float32(ev.X), float32(ev.Y)
		switch ev.Type {
		case telemetry.EventBacteriumLysed:
			if ev.Cause == telemetry.CauseStriker {
				s.burst(x, y, ParticleStrike, 10+s.rng.Intn(5))
			} else {
				s.burst(x, y, ParticleLysis, 16+s.rng.Intn(8))
			}
		case telemetry.EventHelperSpawned:
			s.burst(x, y, ParticleHelperSpawn, 5)
		case telemetry.EventBacteriumSpawned:
			s.burst(x, y, ParticleDivision, 3)
		}
	}
}

// Update advances particles by dt seconds and drops expired ones.
func (s *ParticleSystem) Update(dt float32) {
	drag := float32(math.Pow(0.05, float64(dt)))
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		p.VelX *= drag
		p.VelY *= drag
		p.X += p.VelX * dt
		p.Y += p.VelY * dt

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Clear removes all particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// burst emits a radial burst of count particles.
func (s *ParticleSystem) burst(x, y float32, ptype ParticleType, count int) {
	var speedMin, speedRange, lifeMin, lifeRange, size float32
	switch ptype {
	case ParticleLysis:
		speedMin, speedRange, lifeMin, lifeRange, size = 40, 90, 0.5, 0.5, 2.5
	case ParticleStrike:
		speedMin, speedRange, lifeMin, lifeRange, size = 30, 60, 0.4, 0.4, 2
	case ParticleHelperSpawn:
		speedMin, speedRange, lifeMin, lifeRange, size = 15, 25, 0.3, 0.3, 1.5
	default:
		speedMin, speedRange, lifeMin, lifeRange, size = 5, 10, 0.4, 0.3, 3
	}

	for i := 0; i < count; i++ {
		if len(s.Particles) >= s.maxParticles {
			return
		}

		angle := s.rng.Float64() * 2 * math.Pi
		speed := speedMin + s.rng.Float32()*speedRange
		life := lifeMin + s.rng.Float32()*lifeRange

		s.Particles = append(s.Particles, EffectParticle{
			X:       x + (s.rng.Float32()-0.5)*6,
			Y:       y + (s.rng.Float32()-0.5)*6,
			VelX:    float32(math.Cos(angle)) * speed,
			VelY:    float32(math.Sin(angle)) * speed,
			Life:    life,
			MaxLife: life,
			Type:    ptype,
			Size:    size + s.rng.Float32(),
		})
	}
}

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(particles []EffectParticle) {
	for i := range particles {
		p := &particles[i]

		lifeRatio := p.Life / p.MaxLife

		var color rl.Color
		switch p.Type {
		case ParticleLysis:
			// Phage green
			color = rl.Color{R: 120, G: 230, B: 140, A: uint8(lifeRatio * 220)}
		case ParticleStrike:
			// Striker orange
			color = rl.Color{R: 255, G: 150, B: 60, A: uint8(lifeRatio * 200)}
		case ParticleHelperSpawn:
			color = rl.Color{R: 150, G: 200, B: 255, A: uint8(lifeRatio * 180)}
		case ParticleDivision:
			color = rl.Color{R: 200, G: 170, B: 110, A: uint8(lifeRatio * 90)}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
