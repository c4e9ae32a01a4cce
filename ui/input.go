package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/camera"
	"github.com/pthm-cable/phage/game"
)

// Actions are host-level requests read from the keyboard and mouse in the
// same frame as the simulation input.
type Actions struct {
	Reset       bool
	TogglePause bool
	Clicked     bool    // left button went down this frame
	Wheel       float32 // mouse wheel movement, notches
	MouseX      float64 // screen coordinates
	MouseY      float64
}

// PollInput reads this frame's keyboard and mouse state. The movement axes
// come from WASD or the arrow keys; a left click becomes a pick at the world
// point under the cursor. introActive is passed through to the simulation.
func PollInput(cam *camera.Camera, introActive bool) (game.Input, Actions) {
	var in game.Input
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		in.Move.X++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		in.Move.X--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		in.Move.Y++
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		in.Move.Y--
	}
	in.IntroActive = introActive

	mouse := rl.GetMousePosition()
	act := Actions{
		Reset:       rl.IsKeyPressed(rl.KeyR),
		TogglePause: rl.IsKeyPressed(rl.KeySpace),
		Clicked:     rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Wheel:       rl.GetMouseWheelMove(),
		MouseX:      float64(mouse.X),
		MouseY:      float64(mouse.Y),
	}

	if act.Clicked {
		wx, wy := cam.ScreenToWorld(act.MouseX, act.MouseY)
		in.Pick = &r2.Vec{X: wx, Y: wy}
	}

	return in, act
}
