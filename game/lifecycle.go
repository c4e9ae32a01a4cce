package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/systems"
	"github.com/pthm-cable/phage/telemetry"
)

// helperSpawn is a helper queued by a lysis, created at end of tick.
type helperSpawn struct {
	pos  r2.Vec
	role components.Role
}

// spawnPlayer creates the phage at the dish center.
func (g *Game) spawnPlayer() {
	cfg := g.cfg

	pos := components.Position{}
	pos.Set(g.dish.Center)
	vel := components.Velocity{}
	rot := components.Rotation{Heading: -math.Pi / 2}
	body := components.Body{Radius: cfg.Player.Radius}
	motion := components.PlayerMotion(&cfg.Player)
	tag := components.Player{}

	g.player = g.playerMapper.NewEntity(&pos, &vel, &rot, &body, &motion, &tag)
}

// spawnInitialPopulation seeds the dish with uniformly placed bacteria.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Bacteria.Initial; i++ {
		g.spawnBacterium(g.dish.RandomPoint(g.rng))
	}
}

// spawnBacterium creates a bacterium at p with a random scale, drift and heading.
func (g *Game) spawnBacterium(p r2.Vec) ecs.Entity {
	cfg := &g.cfg.Bacteria

	scale := cfg.ScaleMin + g.rng.Float64()*(cfg.ScaleMax-cfg.ScaleMin)

	pos := components.Position{}
	pos.Set(p)
	vel := components.Velocity{
		X: (g.rng.Float64()*2 - 1) * cfg.InitialSpeed,
		Y: (g.rng.Float64()*2 - 1) * cfg.InitialSpeed,
	}
	rot := components.Rotation{Heading: g.rng.Float64() * 2 * math.Pi}
	body := components.Body{Radius: cfg.Radius * scale}
	bact := components.Bacterium{Scale: scale}

	entity := g.bacteriumMapper.NewEntity(&pos, &vel, &rot, &body, &bact)

	g.numBacteria++
	if g.numBacteria > g.peakBacteria {
		g.peakBacteria = g.numBacteria
	}
	return entity
}

// spawnHelper creates a helper at p with the given role.
func (g *Game) spawnHelper(p r2.Vec, role components.Role) ecs.Entity {
	cfg := &g.cfg.Helpers

	wander := g.rng.Float64() * 2 * math.Pi

	pos := components.Position{}
	pos.Set(p)
	vel := components.Velocity{}
	rot := components.Rotation{Heading: wander}
	body := components.Body{Radius: cfg.Radius}
	motion := components.HelperMotion(cfg)
	helper := components.Helper{Role: role, WanderAngle: wander}

	entity := g.helperMapper.NewEntity(&pos, &vel, &rot, &body, &motion, &helper)

	g.numHelpers++
	if role == components.RoleStriker {
		g.numStrikers++
	}
	return entity
}

// lyse is the single point where a bacterium is destroyed and score advances.
// It is a no-op for a missing or already lysed bacterium and reports whether
// it took effect. Helpers are queued, not created, so it is safe to call
// while a query is open.
func (g *Game) lyse(e ecs.Entity, cause telemetry.Cause) bool {
	if !g.world.Alive(e) || !g.bacteriumMap.Has(e) {
		return false
	}
	bact := g.bacteriumMap.Get(e)
	if bact.Lysed {
		return false
	}

	bact.Lysed = true
	bact.Infected = false
	g.numBacteria--
	g.score++
	if cause == telemetry.CauseStriker {
		g.strikerLyses++
	} else {
		g.playerLyses++
	}

	at := g.posMap.Get(e).Vec()
	g.emit(telemetry.NewLysisEvent(g.elapsed, at.X, at.Y, cause))

	cfg := &g.cfg.Helpers
	for i := 0; i < cfg.PerLysis; i++ {
		if g.numHelpers+len(g.pendingHelpers) >= cfg.Max {
			break
		}
		role := components.RoleSwarmer
		if g.rng.Float64() < cfg.StrikerChance {
			role = components.RoleStriker
		}
		p := systems.RandomPointInCircle(g.rng, at, cfg.SpawnJitter)
		g.pendingHelpers = append(g.pendingHelpers, helperSpawn{
			pos:  g.dish.ClampSpawn(p),
			role: role,
		})
	}
	return true
}

// flushHelperSpawns creates the helpers queued by this tick's lyses.
func (g *Game) flushHelperSpawns() {
	for _, s := range g.pendingHelpers {
		g.spawnHelper(s.pos, s.role)
		g.emit(telemetry.NewHelperSpawnedEvent(g.elapsed, s.pos.X, s.pos.Y, s.role))
	}
	g.pendingHelpers = g.pendingHelpers[:0]
}

// cleanupLysed removes lysed bacteria from the world.
func (g *Game) cleanupLysed() {
	// First pass: collect (no structural changes while the query is open)
	var toRemove []ecs.Entity

	query := g.bacteriaFilter.Query()
	for query.Next() {
		_, _, _, _, bact := query.Get()
		if bact.Lysed {
			toRemove = append(toRemove, query.Entity())
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
}

func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
}
