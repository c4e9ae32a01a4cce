package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/game"
)

// IntroOverlay is the briefing shown at session start. While it is active
// the host reports Input.IntroActive so picks are ignored and bacteria do
// not reproduce.
type IntroOverlay struct {
	renderer  *Renderer
	duration  float64
	remaining float64
}

// NewIntroOverlay creates an intro that lasts duration seconds (0 disables it).
func NewIntroOverlay(duration float64) *IntroOverlay {
	return &IntroOverlay{
		renderer:  NewRenderer(),
		duration:  duration,
		remaining: duration,
	}
}

// Active reports whether the intro is showing.
func (o *IntroOverlay) Active() bool {
	return o.remaining > 0
}

// Update counts the intro down; a click dismisses it early.
func (o *IntroOverlay) Update(dt float64, clicked bool) {
	if !o.Active() {
		return
	}
	if clicked {
		o.remaining = 0
		return
	}
	o.remaining -= dt
}

// Restart shows the intro again.
func (o *IntroOverlay) Restart() {
	o.remaining = o.duration
}

// Draw renders the intro briefing.
func (o *IntroOverlay) Draw(neededToWin, loseThreshold int) {
	if !o.Active() {
		return
	}

	r := o.renderer
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, h, rl.Color{R: 0, G: 0, B: 0, A: 150})

	cx, y := w/2, h/2-90
	r.DrawCenteredText("PHAGE", cx, y, r.Theme.TitleFontSize+8, rl.Color{R: 200, G: 255, B: 210, A: 255})
	y += 56
	r.DrawCenteredText("Click a nearby bacterium to inject it. Each lysis releases helpers.", cx, y, 18, rl.RayWhite)
	y += 26
	r.DrawCenteredText(fmt.Sprintf("Lyse %d to win. The culture wins at %d bacteria.", neededToWin, loseThreshold), cx, y, 18, rl.RayWhite)
	y += 40
	r.DrawCenteredText(fmt.Sprintf("Click to start (%.0f)", o.remaining+0.5), cx, y, 16, rl.Gray)
}

// GameOverPanel shows the session result with a restart button.
type GameOverPanel struct {
	renderer *Renderer
	width    float32
	height   float32
}

// NewGameOverPanel creates a new game-over panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    360,
		height:   200,
	}
}

// Draw renders the panel for a finished session and reports whether the
// restart button was pressed.
func (p *GameOverPanel) Draw(s *game.Snapshot) bool {
	if !s.GameOver {
		return false
	}

	r := p.renderer
	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	x, y := (sw-p.width)/2, (sh-p.height)/2

	rl.DrawRectangle(0, 0, int32(sw), int32(sh), rl.Color{R: 0, G: 0, B: 0, A: 120})
	r.DrawPanel(int32(x), int32(y), int32(p.width), int32(p.height))

	title, color := "CULTURE OVERRAN THE DISH", rl.Color{R: 230, G: 110, B: 90, A: 255}
	if s.Won {
		title, color = "DISH CLEARED", rl.Color{R: 130, G: 230, B: 140, A: 255}
	}

	cx := int32(x + p.width/2)
	ty := int32(y) + r.Theme.Padding*2
	r.DrawCenteredText(title, cx, ty, 24, color)
	ty += 40
	r.DrawCenteredText(fmt.Sprintf("Lysed %d of %d in %s", s.Score, s.NeededToWin, formatElapsed(s.Elapsed)), cx, ty, 16, rl.RayWhite)
	ty += 22
	r.DrawCenteredText(fmt.Sprintf("%d bacteria, %d helpers", len(s.Bacteria), len(s.Helpers)), cx, ty, 14, rl.LightGray)

	button := rl.Rectangle{X: x + p.width/2 - 70, Y: y + p.height - 50, Width: 140, Height: 32}
	return gui.Button(button, "Play again [R]")
}
