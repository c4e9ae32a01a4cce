package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/config"
)

// Candidate is a bacterium visible to nearest-target searches.
// State points into ECS storage and is valid until the next structural change,
// so candidate lists are rebuilt every tick and entities are only added or
// removed after all searches have finished.
type Candidate struct {
	Entity ecs.Entity
	Pos    r2.Vec
	State  *components.Bacterium
}

// Active accepts any bacterium that has not been lysed.
func Active(b *components.Bacterium) bool {
	return b.Active()
}

// ActiveUninfected accepts bacteria helpers may chase.
func ActiveUninfected(b *components.Bacterium) bool {
	return b.Active() && !b.Infected
}

// Nearest returns the index of the accepted candidate closest to p and its
// squared distance, or -1 if none qualifies. Ties keep the first candidate
// in slice order.
func Nearest(cands []Candidate, p r2.Vec, accept func(*components.Bacterium) bool) (int, float64) {
	best := -1
	bestDistSq := math.Inf(1)
	for i := range cands {
		c := &cands[i]
		if !accept(c.State) {
			continue
		}
		d := r2.Norm2(r2.Sub(c.Pos, p))
		if d < bestDistSq {
			best = i
			bestDistSq = d
		}
	}
	return best, bestDistSq
}

// DriftBacterium applies random per-axis jitter to a bacterium's velocity,
// clamps each axis, and spins its visual heading. Infected bacteria move and
// spin with their own, calmer parameters.
func DriftBacterium(rng *rand.Rand, vel *components.Velocity, rot *components.Rotation, b *components.Bacterium, cfg *config.BacteriaConfig, dt float64) {
	jitter, maxSpeed, spin := cfg.Jitter, cfg.MaxSpeed, cfg.Spin
	if b.Infected {
		jitter, maxSpeed, spin = cfg.InfectedJitter, cfg.InfectedMaxSpeed, cfg.InfectedSpin
	}

	vel.X = clampFloat(vel.X+(rng.Float64()*2-1)*jitter*dt, -maxSpeed, maxSpeed)
	vel.Y = clampFloat(vel.Y+(rng.Float64()*2-1)*jitter*dt, -maxSpeed, maxSpeed)
	rot.Heading = normalizeAngle(rot.Heading + spin*dt)
}

// HelperOutcome reports what a helper decided this tick.
type HelperOutcome struct {
	Target int  // index into grid.Candidates(), -1 if none
	Strike bool // a striker hit Target; the caller performs the lysis
}

// UpdateHelper runs one tick of helper AI and moves the helper.
//
// Priority: seek the nearest uninfected bacterium inside seek range (switching
// to a tangential orbit when close), otherwise wander. Strikers additionally
// roll a frame-rate independent strike chance when their cooldown has elapsed
// and the target is inside strike range; a strike resets the cooldown and
// throws the helper back from the target.
func UpdateHelper(
	rng *rand.Rand,
	pos *components.Position,
	vel *components.Velocity,
	rot *components.Rotation,
	m *components.Motion,
	h *components.Helper,
	grid *SpatialGrid,
	cfg *config.HelpersConfig,
	dt float64,
) HelperOutcome {
	out := HelperOutcome{Target: -1}
	here := pos.Vec()

	cands := grid.Candidates()
	idx, distSq := grid.NearestWithin(here, cfg.SeekRange, ActiveUninfected)
	var accel r2.Vec
	if idx >= 0 {
		out.Target = idx
		toTarget := r2.Sub(cands[idx].Pos, here)
		if distSq < cfg.OrbitRange*cfg.OrbitRange {
			accel = SetLength(Perpendicular(toTarget), cfg.OrbitAccel)
		} else {
			accel = SetLength(toTarget, cfg.SeekAccel)
		}
		rot.Heading = TurnToward(rot.Heading, Angle(toTarget), cfg.SeekTurnRate, dt)
	} else {
		h.WanderAngle = normalizeAngle(h.WanderAngle + (rng.Float64()*2-1)*cfg.WanderJitter*dt)
		accel = FromAngle(h.WanderAngle, cfg.WanderAccel)
		rot.Heading = TurnToward(rot.Heading, h.WanderAngle, cfg.WanderTurnRate, dt)
	}

	m.AccelX, m.AccelY = accel.X, accel.Y
	Integrate(pos, vel, m, dt)

	if h.Role != components.RoleStriker {
		return out
	}

	h.Cooldown = math.Max(0, h.Cooldown-dt)
	if h.Cooldown > 0 || out.Target < 0 || distSq >= cfg.StrikeRange*cfg.StrikeRange {
		return out
	}
	if rng.Float64() >= PerTickChance(cfg.StrikeChancePerSec, dt) {
		return out
	}

	out.Strike = true
	h.Cooldown = cfg.StrikeCooldown

	away := r2.Sub(here, cands[out.Target].Pos)
	if away.X == 0 && away.Y == 0 {
		away = FromAngle(rot.Heading+math.Pi, 1)
	}
	vel.Set(SetLength(away, cfg.RecoilSpeed))

	return out
}

// SteerPlayer converts a movement intent into the phage's acceleration input.
// The intent is normalized so diagonal input is not faster.
func SteerPlayer(m *components.Motion, rot *components.Rotation, intent r2.Vec, accel float64) {
	dir := Normalize(intent)
	m.AccelX, m.AccelY = dir.X*accel, dir.Y*accel
	if dir.X != 0 || dir.Y != 0 {
		rot.Heading = Angle(dir)
	}
}
