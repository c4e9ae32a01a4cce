package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/systems"
	"github.com/pthm-cable/phage/telemetry"
)

// PlayerView is the phage as the presentation layer sees it.
type PlayerView struct {
	Pos     r2.Vec
	Heading float64
	Radius  float64
}

// BacteriumView is an active bacterium.
type BacteriumView struct {
	Pos      r2.Vec
	Heading  float64
	Radius   float64
	Scale    float64
	Infected bool
}

// HelperView is a helper.
type HelperView struct {
	Pos     r2.Vec
	Heading float64
	Radius  float64
	Role    components.Role
}

// InjectionView describes the running injection, if any.
type InjectionView struct {
	Active   bool
	Progress float64 // [0, 1]
	Target   r2.Vec
}

// Snapshot is a read-only copy of the session state after a tick.
type Snapshot struct {
	SessionID string
	Tick      int
	Elapsed   float64

	Score         int
	NeededToWin   int
	LoseThreshold int
	GameOver      bool
	Won           bool // only meaningful when GameOver

	Dish      systems.Dish
	Player    PlayerView
	Bacteria  []BacteriumView
	Helpers   []HelperView
	Strikers  int
	Injection InjectionView

	// Events emitted during the last tick
	Events []telemetry.Event
}

// Snapshot copies the current state for presentation.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		SessionID:     g.sessionID,
		Tick:          g.tick,
		Elapsed:       g.elapsed,
		Score:         g.score,
		NeededToWin:   g.cfg.Session.NeededToWin,
		LoseThreshold: g.cfg.Session.LoseThreshold,
		GameOver:      g.gameOver,
		Won:           g.won,
		Dish:          g.dish,
		Bacteria:      make([]BacteriumView, 0, g.numBacteria),
		Helpers:       make([]HelperView, 0, g.numHelpers),
		Strikers:      g.numStrikers,
		Events:        append([]telemetry.Event(nil), g.events...),
	}

	s.Player = PlayerView{
		Pos:     g.posMap.Get(g.player).Vec(),
		Heading: g.rotMap.Get(g.player).Heading,
		Radius:  g.bodyMap.Get(g.player).Radius,
	}

	bacteria := g.bacteriaFilter.Query()
	for bacteria.Next() {
		pos, _, rot, body, bact := bacteria.Get()
		if !bact.Active() {
			continue
		}
		s.Bacteria = append(s.Bacteria, BacteriumView{
			Pos:      pos.Vec(),
			Heading:  rot.Heading,
			Radius:   body.Radius,
			Scale:    bact.Scale,
			Infected: bact.Infected,
		})
	}

	helpers := g.helperFilter.Query()
	for helpers.Next() {
		pos, _, rot, body, _, h := helpers.Get()
		s.Helpers = append(s.Helpers, HelperView{
			Pos:     pos.Vec(),
			Heading: rot.Heading,
			Radius:  body.Radius,
			Role:    h.Role,
		})
	}

	if g.injection.Active() && g.world.Alive(g.injection.Target) {
		s.Injection = InjectionView{
			Active:   true,
			Progress: g.injection.Progress(g.elapsed),
			Target:   g.posMap.Get(g.injection.Target).Vec(),
		}
	}

	return s
}
