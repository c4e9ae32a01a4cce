package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/systems"
	"github.com/pthm-cable/phage/telemetry"
)

// Step advances the session by dt seconds. It is a no-op once the session
// has ended or for a non-positive dt.
func (g *Game) Step(dt float64, in Input) {
	if g.gameOver || dt <= 0 {
		return
	}

	g.events = g.events[:0]
	g.elapsed += dt

	g.perfCollector.StartTick()

	// 1. Input: collect targets and resolve the pick event
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.collectCandidates()
	if in.Pick != nil && !in.IntroActive {
		g.handlePick(*in.Pick)
	}

	// 2. Player movement (pinned while injecting)
	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.updatePlayer(in.Move, dt)

	// 3. Helper AI, strikes queue lyses
	g.perfCollector.StartPhase(telemetry.PhaseHelpers)
	g.updateHelpers(dt)

	// 4. Bacteria drift
	g.perfCollector.StartPhase(telemetry.PhaseBacteria)
	g.updateBacteria(dt)

	// 5. Keep everything inside the dish
	g.perfCollector.StartPhase(telemetry.PhaseContainment)
	g.constrainAll()

	// 6. Advance or resolve the injection
	g.perfCollector.StartPhase(telemetry.PhaseInjection)
	g.updateInjection()

	// 7. Reproduction ticks (suspended during the intro)
	g.perfCollector.StartPhase(telemetry.PhaseReproduction)
	if !in.IntroActive {
		g.updateReproduction(dt)
	}

	// 8. Structural changes, then win/lose
	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.flushHelperSpawns()
	g.cleanupLysed()
	g.evaluateSession()

	// 9. Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// collectCandidates rebuilds the list of active bacteria used by nearest
// searches this tick. Entries stay valid until the cleanup phase.
func (g *Game) collectCandidates() {
	g.candidates = g.candidates[:0]

	query := g.bacteriaFilter.Query()
	for query.Next() {
		pos, _, _, _, bact := query.Get()
		if !bact.Active() {
			continue
		}
		g.candidates = append(g.candidates, systems.Candidate{
			Entity: query.Entity(),
			Pos:    pos.Vec(),
			State:  bact,
		})
	}
	g.grid.Rebuild(g.candidates)
}

// handlePick tries to start an injection at the picked point.
func (g *Game) handlePick(pick r2.Vec) {
	player := g.posMap.Get(g.player).Vec()
	result, idx, dist := systems.TryAttach(
		&g.injection, g.candidates, pick, player,
		g.elapsed, g.numBacteria, &g.cfg.Injection,
	)

	switch result {
	case systems.AttachStarted:
		at := g.candidates[idx].Pos
		g.emit(telemetry.NewInjectionStartedEvent(g.elapsed, at.X, at.Y, g.injection.Duration))
	case systems.AttachOutOfRange:
		at := g.candidates[idx].Pos
		g.emit(telemetry.NewInjectionRejectedEvent(g.elapsed, at.X, at.Y, dist))
		slog.Debug("injection_rejected",
			"session_id", g.sessionID,
			"distance", dist,
			"attach_range", g.cfg.Injection.AttachRange,
		)
	}
}

// updatePlayer steers and integrates the phage. While injecting the phage
// does not move on its own; updateInjection pins it to the target.
func (g *Game) updatePlayer(move r2.Vec, dt float64) {
	pos := g.posMap.Get(g.player)
	vel := g.velMap.Get(g.player)
	rot := g.rotMap.Get(g.player)
	m := g.motionMap.Get(g.player)

	if g.injection.Active() {
		m.AccelX, m.AccelY = 0, 0
		return
	}

	systems.SteerPlayer(m, rot, move, g.cfg.Player.Accel)
	systems.Integrate(pos, vel, m, dt)
}

// updateHelpers runs helper AI. Strikes lyse their target immediately; the
// candidate entry turns inactive so later helpers skip it this tick.
func (g *Game) updateHelpers(dt float64) {
	cfg := &g.cfg.Helpers

	query := g.helperFilter.Query()
	for query.Next() {
		pos, vel, rot, _, m, h := query.Get()

		out := systems.UpdateHelper(g.rng, pos, vel, rot, m, h, g.grid, cfg, dt)
		if out.Strike {
			g.lyse(g.candidates[out.Target].Entity, telemetry.CauseStriker)
		}
	}
}

// updateBacteria applies drift to active bacteria.
func (g *Game) updateBacteria(dt float64) {
	cfg := &g.cfg.Bacteria

	query := g.bacteriaFilter.Query()
	for query.Next() {
		pos, vel, rot, _, bact := query.Get()
		if !bact.Active() {
			continue
		}
		systems.DriftBacterium(g.rng, vel, rot, bact, cfg, dt)
		systems.Drift(pos, vel, dt)
	}
}

// constrainAll applies dish containment to every active entity.
func (g *Game) constrainAll() {
	systems.ConstrainToDish(g.posMap.Get(g.player), g.velMap.Get(g.player), g.dish)

	bacteria := g.bacteriaFilter.Query()
	for bacteria.Next() {
		pos, vel, _, _, bact := bacteria.Get()
		if bact.Active() {
			systems.ConstrainToDish(pos, vel, g.dish)
		}
	}

	helpers := g.helperFilter.Query()
	for helpers.Next() {
		pos, vel, _, _, _, _ := helpers.Get()
		systems.ConstrainToDish(pos, vel, g.dish)
	}
}

// updateInjection pins the phage to its target and resolves the injection.
func (g *Game) updateInjection() {
	if !g.injection.Active() {
		return
	}

	target := g.injection.Target
	if !g.targetValid() {
		g.abortInjection()
		return
	}

	at := g.posMap.Get(target).Vec()
	g.posMap.Get(g.player).Set(at)
	vel := g.velMap.Get(g.player)
	vel.X, vel.Y = 0, 0

	if g.injection.Done(g.elapsed) {
		g.lyse(target, telemetry.CausePlayer)
		g.injection.Clear()
	}
}

// targetValid reports whether the injection target is still an active,
// infected bacterium.
func (g *Game) targetValid() bool {
	target := g.injection.Target
	if !g.world.Alive(target) || !g.bacteriumMap.Has(target) {
		return false
	}
	bact := g.bacteriumMap.Get(target)
	return bact.Active() && bact.Infected
}

// abortInjection clears the injection without lysis credit.
func (g *Game) abortInjection() {
	if !g.injection.Active() {
		return
	}

	target := g.injection.Target
	var at r2.Vec
	if g.world.Alive(target) && g.bacteriumMap.Has(target) {
		g.bacteriumMap.Get(target).Infected = false
		at = g.posMap.Get(target).Vec()
	}
	g.injection.Clear()
	g.emit(telemetry.NewInjectionAbortedEvent(g.elapsed, at.X, at.Y))
}

// updateReproduction fires the reproduction controller for every period
// accumulated this tick.
func (g *Game) updateReproduction(dt float64) {
	fires := g.reproduction.Advance(dt, g.cfg.Reproduction.Period)
	for i := 0; i < fires; i++ {
		parents := g.activeBacteriaPositions()
		for _, p := range systems.PlanSpawns(g.rng, &g.cfg.Reproduction, g.dish, g.elapsed, parents) {
			g.spawnBacterium(p)
			g.emit(telemetry.NewBacteriumSpawnedEvent(g.elapsed, p.X, p.Y))
		}
	}
}

// activeBacteriaPositions returns the positions of all active bacteria.
func (g *Game) activeBacteriaPositions() []r2.Vec {
	positions := make([]r2.Vec, 0, g.numBacteria)

	query := g.bacteriaFilter.Query()
	for query.Next() {
		pos, _, _, _, bact := query.Get()
		if bact.Active() {
			positions = append(positions, pos.Vec())
		}
	}
	return positions
}

// evaluateSession ends the session on a win or loss.
func (g *Game) evaluateSession() {
	switch {
	case g.score >= g.cfg.Session.NeededToWin:
		g.endSession(true)
	case g.numBacteria >= g.cfg.Session.LoseThreshold:
		g.endSession(false)
	}
}

// endSession freezes the session and cancels any running injection.
func (g *Game) endSession(won bool) {
	g.abortInjection()
	g.gameOver = true
	g.won = won
	g.emit(telemetry.NewSessionEndedEvent(g.elapsed, won))
	g.recordSession()
}
