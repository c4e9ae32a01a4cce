package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/camera"
	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/game"
	"github.com/pthm-cable/phage/renderer"
	"github.com/pthm-cable/phage/ui"
)

const controlsLegend = "WASD: move | Click: inject | Wheel: zoom | Space: pause | R: restart | F1: controls"

// app is the graphical host: it owns the window-side state around a Game.
type app struct {
	cfg  *config.Config
	game *game.Game

	cam      *camera.Camera
	scene    *renderer.Scene
	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	controls *ui.ControlsPanel
	perf     *ui.PerfPanel
	events   *ui.EventLog
	intro    *ui.IntroOverlay
	gameOver *ui.GameOverPanel

	pilot  *game.Autopilot // nil = human player
	paused bool
	snap   *game.Snapshot
}

func newApp(opts game.Options, autopilot bool) *app {
	cfg := opts.Config
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	a := &app{
		cfg:      cfg,
		game:     game.NewGameWithOptions(opts),
		cam:      camera.New(float64(w), float64(h), float64(w), float64(h), cfg.Camera.MaxZoom),
		scene:    renderer.NewScene(w, h, opts.Seed),
		overlays: ui.NewOverlayRegistry(),
		hud:      ui.NewHUD(10, 10, 260),
		controls: ui.NewControlsPanel(10, 160, 260),
		perf:     ui.NewPerfPanel(w-290, 10, 280),
		events:   ui.NewEventLog(w-290, h-260, 280, 14),
		intro:    ui.NewIntroOverlay(cfg.Session.IntroSeconds),
		gameOver: ui.NewGameOverPanel(),
	}
	if autopilot {
		a.pilot = game.NewAutopilot(cfg)
	}
	a.scene.Init()
	a.snap = a.game.Snapshot()
	return a
}

// Frame handles input, advances the simulation by the frame delta and draws.
func (a *app) Frame(frameTime float32) {
	dt := float64(frameTime)
	if dt > a.cfg.Physics.MaxDT {
		dt = a.cfg.Physics.MaxDT
	}

	in, act := ui.PollInput(a.cam, a.intro.Active())
	a.overlays.HandleKeys()

	if act.Reset {
		a.reset()
		return
	}
	if act.TogglePause {
		a.paused = !a.paused
	}
	if act.Wheel != 0 {
		factor := a.cfg.Camera.ZoomStep
		if act.Wheel < 0 {
			factor = 1 / factor
		}
		a.cam.ZoomAt(act.MouseX, act.MouseY, factor)
	}

	stepped := false
	if !a.paused {
		a.intro.Update(dt, act.Clicked)
		if a.pilot != nil && !in.IntroActive {
			in = a.pilot.Next(a.snap)
		}
		a.game.Step(dt, in)
		stepped = true
	}

	a.snap = a.game.Snapshot()
	if stepped {
		a.scene.Update(a.snap, float32(dt))
		a.events.Append(a.snap.Events)
		if a.cam.Zoom > a.cam.MinZoom {
			a.cam.Follow(a.snap.Player.Pos.X, a.snap.Player.Pos.Y, a.cfg.Camera.FollowRate, dt)
		}
	}

	if a.draw() {
		a.reset()
	}
}

// draw renders the frame and reports whether the restart button was pressed.
func (a *app) draw() bool {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)

	a.scene.Draw(a.snap, a.cam, renderer.SceneOptions{
		ShowAttachRange: a.overlays.IsEnabled(ui.OverlayAttachRange),
		AttachRange:     a.cfg.Injection.AttachRange,
	})

	a.hud.Draw(ui.HUDData{
		Snapshot: a.snap,
		FPS:      rl.GetFPS(),
		Paused:   a.paused,
		Zoom:     a.cam.Zoom,
	})
	a.hud.DrawControls(int32(a.cfg.Screen.Height), controlsLegend)

	if a.overlays.IsEnabled(ui.OverlayControls) {
		a.controls.Draw(a.overlays)
	}
	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perf.Draw(a.game.PerfStats())
	}
	if a.overlays.IsEnabled(ui.OverlayEventLog) {
		a.events.Draw()
	}

	a.intro.Draw(a.snap.NeededToWin, a.snap.LoseThreshold)
	return a.gameOver.Draw(a.snap)
}

// reset starts a fresh session.
func (a *app) reset() {
	a.game.Reset()
	a.scene.Reset()
	a.events.Clear()
	a.cam.Reset()
	a.intro.Restart()
	a.paused = false
	a.snap = a.game.Snapshot()
}

// Unload frees GPU resources and closes telemetry output.
func (a *app) Unload() {
	a.scene.Unload()
	a.game.Unload()
}
