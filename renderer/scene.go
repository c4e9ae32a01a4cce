// Package renderer draws game snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/camera"
	"github.com/pthm-cable/phage/game"
)

// SceneOptions toggles optional scene layers.
type SceneOptions struct {
	ShowAttachRange bool
	AttachRange     float64
}

// Scene draws a full game frame (world only, no HUD) from a snapshot.
type Scene struct {
	dish      *DishRenderer
	entities  *EntityRenderer
	particles *ParticleSystem
	particleR *ParticleRenderer
	time      float32
}

// NewScene creates a scene for a screen of the given size.
// Must be followed by Init once the raylib window exists.
func NewScene(width, height int32, seed int64) *Scene {
	return &Scene{
		dish:      NewDishRenderer(width, height),
		entities:  NewEntityRenderer(),
		particles: NewParticleSystem(seed),
		particleR: NewParticleRenderer(),
	}
}

// Init loads GPU resources.
func (s *Scene) Init() {
	s.dish.Init()
}

// Update advances cosmetic state by dt seconds and consumes the tick's events.
func (s *Scene) Update(snap *game.Snapshot, dt float32) {
	s.time += dt
	s.particles.Emit(snap.Events)
	s.particles.Update(dt)
}

// Reset clears cosmetic state after a session reset.
func (s *Scene) Reset() {
	s.particles.Clear()
}

// Draw renders the snapshot through the camera.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (s *Scene) Draw(snap *game.Snapshot, cam *camera.Camera, opts SceneOptions) {
	s.dish.DrawBackground(snap.Dish, cam, s.time)

	rl.BeginMode2D(Camera2D(cam))
	defer rl.EndMode2D()

	s.dish.DrawRim(snap.Dish)
	s.entities.DrawBacteria(snap.Bacteria)
	s.particleR.Draw(s.particles.Particles)
	s.entities.DrawHelpers(snap.Helpers)
	s.entities.DrawInjection(snap.Player, snap.Injection)
	s.entities.DrawPlayer(snap.Player)

	if opts.ShowAttachRange {
		s.entities.DrawAttachRange(snap.Player, opts.AttachRange)
	}
}

// Camera2D converts the camera into raylib's 2D camera.
func Camera2D(cam *camera.Camera) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: float32(cam.ViewportW / 2), Y: float32(cam.ViewportH / 2)},
		Target: rl.Vector2{X: float32(cam.X), Y: float32(cam.Y)},
		Zoom:   float32(cam.Zoom),
	}
}

// ParticleCount returns the number of live effect particles.
func (s *Scene) ParticleCount() int {
	return s.particles.Count()
}

// Unload frees resources.
func (s *Scene) Unload() {
	s.dish.Unload()
}
