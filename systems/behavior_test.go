package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/config"
)

func candidatesAt(points ...r2.Vec) []Candidate {
	cands := make([]Candidate, len(points))
	for i, p := range points {
		cands[i] = Candidate{Pos: p, State: &components.Bacterium{Scale: 1}}
	}
	return cands
}

// ---------- Nearest ----------

func TestNearest(t *testing.T) {
	origin := r2.Vec{}

	t.Run("empty", func(t *testing.T) {
		if idx, _ := Nearest(nil, origin, Active); idx != -1 {
			t.Errorf("idx = %d, want -1", idx)
		}
	})

	t.Run("closest wins", func(t *testing.T) {
		cands := candidatesAt(r2.Vec{X: 10}, r2.Vec{X: 3}, r2.Vec{X: -5})
		idx, distSq := Nearest(cands, origin, Active)
		if idx != 1 || distSq != 9 {
			t.Errorf("Nearest = (%d, %v), want (1, 9)", idx, distSq)
		}
	})

	t.Run("tie keeps first", func(t *testing.T) {
		cands := candidatesAt(r2.Vec{X: 20}, r2.Vec{X: 5}, r2.Vec{Y: 5}, r2.Vec{X: -5})
		if idx, _ := Nearest(cands, origin, Active); idx != 1 {
			t.Errorf("idx = %d, want 1", idx)
		}
	})

	t.Run("filters", func(t *testing.T) {
		cands := candidatesAt(r2.Vec{X: 1}, r2.Vec{X: 2}, r2.Vec{X: 3})
		cands[0].State.Lysed = true
		cands[1].State.Infected = true

		if idx, _ := Nearest(cands, origin, Active); idx != 1 {
			t.Errorf("Active: idx = %d, want 1", idx)
		}
		if idx, _ := Nearest(cands, origin, ActiveUninfected); idx != 2 {
			t.Errorf("ActiveUninfected: idx = %d, want 2", idx)
		}
	})
}

// ---------- DriftBacterium ----------

func TestDriftBacteriumClampsProperty(t *testing.T) {
	cfg := config.Default().Bacteria

	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		b := components.Bacterium{Infected: rapid.Bool().Draw(t, "infected")}
		vel := components.Velocity{
			X: rapid.Float64Range(-200, 200).Draw(t, "vx"),
			Y: rapid.Float64Range(-200, 200).Draw(t, "vy"),
		}
		rot := components.Rotation{}

		DriftBacterium(rng, &vel, &rot, &b, &cfg, 1.0/60)

		limit := cfg.MaxSpeed
		if b.Infected {
			limit = cfg.InfectedMaxSpeed
		}
		if math.Abs(vel.X) > limit || math.Abs(vel.Y) > limit {
			t.Fatalf("velocity %+v exceeds per-axis limit %v", vel, limit)
		}
	})
}

func TestDriftBacteriumSpin(t *testing.T) {
	cfg := config.Default().Bacteria
	rng := rand.New(rand.NewSource(1))

	for _, infected := range []bool{false, true} {
		b := components.Bacterium{Infected: infected}
		vel := components.Velocity{}
		rot := components.Rotation{}
		DriftBacterium(rng, &vel, &rot, &b, &cfg, 1)

		want := cfg.Spin
		if infected {
			want = cfg.InfectedSpin
		}
		if math.Abs(rot.Heading-want) > 1e-9 {
			t.Errorf("infected=%v heading = %v, want %v", infected, rot.Heading, want)
		}
	}
}

// ---------- UpdateHelper ----------

type helperRig struct {
	pos components.Position
	vel components.Velocity
	rot components.Rotation
	m   components.Motion
	h   components.Helper
	cfg config.HelpersConfig
}

func newHelperRig(role components.Role) *helperRig {
	cfg := config.Default().Helpers
	return &helperRig{
		m:   components.HelperMotion(&cfg),
		h:   components.Helper{Role: role},
		cfg: cfg,
	}
}

func (r *helperRig) update(rng *rand.Rand, cands []Candidate, dt float64) HelperOutcome {
	grid := NewSpatialGrid(testDish(), 64)
	grid.Rebuild(cands)
	return UpdateHelper(rng, &r.pos, &r.vel, &r.rot, &r.m, &r.h, grid, &r.cfg, dt)
}

func TestUpdateHelperSteering(t *testing.T) {
	cfg := config.Default().Helpers

	tests := []struct {
		name       string
		target     r2.Vec
		wantTarget int
		wantAccel  r2.Vec // zero skips the direction check
		wantMag    float64
	}{
		{"seek", r2.Vec{X: 200}, 0, r2.Vec{X: cfg.SeekAccel}, cfg.SeekAccel},
		{"orbit", r2.Vec{X: 50}, 0, r2.Vec{Y: cfg.OrbitAccel}, cfg.OrbitAccel},
		{"wander", r2.Vec{X: 1000}, -1, r2.Vec{}, cfg.WanderAccel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newHelperRig(components.RoleSwarmer)
			out := rig.update(rand.New(rand.NewSource(1)), candidatesAt(tt.target), 1.0/60)

			if out.Target != tt.wantTarget {
				t.Errorf("Target = %d, want %d", out.Target, tt.wantTarget)
			}
			accel := r2.Vec{X: rig.m.AccelX, Y: rig.m.AccelY}
			if math.Abs(r2.Norm(accel)-tt.wantMag) > 1e-9 {
				t.Errorf("|accel| = %v, want %v", r2.Norm(accel), tt.wantMag)
			}
			if tt.wantAccel != (r2.Vec{}) && r2.Norm(r2.Sub(accel, tt.wantAccel)) > 1e-9 {
				t.Errorf("accel = %v, want %v", accel, tt.wantAccel)
			}
			if out.Strike {
				t.Error("swarmer must never strike")
			}
		})
	}
}

func TestUpdateHelperIgnoresInfected(t *testing.T) {
	rig := newHelperRig(components.RoleStriker)
	rig.cfg.StrikeChancePerSec = 1

	cands := candidatesAt(r2.Vec{X: 10})
	cands[0].State.Infected = true

	out := rig.update(rand.New(rand.NewSource(1)), cands, 1.0/60)
	if out.Target != -1 || out.Strike {
		t.Errorf("outcome = %+v, infected bacteria are not targets", out)
	}
}

func TestUpdateHelperStrikeAndCooldown(t *testing.T) {
	rig := newHelperRig(components.RoleStriker)
	rig.cfg.StrikeChancePerSec = 1
	rng := rand.New(rand.NewSource(1))
	cands := candidatesAt(r2.Vec{X: 10})

	out := rig.update(rng, cands, 1.0/60)
	if !out.Strike || out.Target != 0 {
		t.Fatalf("outcome = %+v, want a strike on 0", out)
	}
	if rig.h.Cooldown != rig.cfg.StrikeCooldown {
		t.Errorf("cooldown = %v, want %v", rig.h.Cooldown, rig.cfg.StrikeCooldown)
	}
	if speed := r2.Norm(rig.vel.Vec()); math.Abs(speed-rig.cfg.RecoilSpeed) > 1e-9 {
		t.Errorf("recoil speed = %v, want %v", speed, rig.cfg.RecoilSpeed)
	}
	if rig.vel.X >= 0 {
		t.Errorf("recoil %+v should point away from the target", rig.vel)
	}

	// Cooling down: no strike even with a certain chance
	rig.pos = components.Position{}
	if out := rig.update(rng, cands, 1.0/60); out.Strike {
		t.Error("struck again during cooldown")
	}
}

func TestUpdateHelperStrikeRange(t *testing.T) {
	rig := newHelperRig(components.RoleStriker)
	rig.cfg.StrikeChancePerSec = 1

	out := rig.update(rand.New(rand.NewSource(1)), candidatesAt(r2.Vec{X: rig.cfg.StrikeRange + 1}), 1.0/60)
	if out.Strike {
		t.Error("struck outside strike range")
	}
	if out.Target != 0 {
		t.Errorf("Target = %d, want 0", out.Target)
	}
}

func TestSteerPlayerNormalizesIntent(t *testing.T) {
	m := components.Motion{}
	rot := components.Rotation{Heading: 1}

	SteerPlayer(&m, &rot, r2.Vec{X: 1, Y: 1}, 100)
	if mag := math.Hypot(m.AccelX, m.AccelY); math.Abs(mag-100) > 1e-9 {
		t.Errorf("|accel| = %v, want 100", mag)
	}
	if math.Abs(rot.Heading-math.Pi/4) > 1e-9 {
		t.Errorf("heading = %v, want pi/4", rot.Heading)
	}

	SteerPlayer(&m, &rot, r2.Vec{}, 100)
	if m.AccelX != 0 || m.AccelY != 0 {
		t.Errorf("accel = (%v, %v), want zero", m.AccelX, m.AccelY)
	}
	if math.Abs(rot.Heading-math.Pi/4) > 1e-9 {
		t.Error("heading should hold without input")
	}
}
