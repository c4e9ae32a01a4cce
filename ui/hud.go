package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/game"
	"github.com/pthm-cable/phage/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Snapshot *game.Snapshot
	FPS      int32
	Paused   bool
	Zoom     float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	s := data.Snapshot
	padding := r.Theme.Padding

	height := r.Theme.LineHeight*7 + padding*2
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + padding
	y := h.y + padding
	inner := h.width - padding*2

	rl.DrawText("PHAGE", x, y, 20, rl.White)
	y += 26

	y = r.DrawCountBar(x, y, "Lysed", s.Score, s.NeededToWin, inner, true)
	y = r.DrawCountBar(x, y, "Bacteria", len(s.Bacteria), s.LoseThreshold, inner, false)
	y = r.DrawLabelValue(x, y, "Helpers", fmt.Sprintf("%d (%d strikers)", len(s.Helpers), s.Strikers))
	y = r.DrawLabelValue(x, y, "Time", formatElapsed(s.Elapsed))

	status := fmt.Sprintf("FPS: %d", data.FPS)
	if data.Zoom > 1.001 {
		status += fmt.Sprintf(" | Zoom: %.1fx", data.Zoom)
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, rl.Gray)

	if data.Paused {
		r.DrawCenteredText("PAUSED", int32(rl.GetScreenWidth())/2, 20, 24, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// formatElapsed renders seconds as m:ss.
func formatElapsed(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// PerfPanel renders the per-phase tick timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding

	height := int32(len(telemetry.Phases)+3)*14 + padding*2 + 4
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding

	rl.DrawText("Tick Performance", x, y, 14, rl.White)
	y += 18

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 12, rl.Yellow,
	)
	y += 14
	rl.DrawText(fmt.Sprintf("Ticks/s: %.0f", stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-13s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
