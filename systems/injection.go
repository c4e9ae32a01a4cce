package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/config"
)

// InjectionPhase is the phage's interaction state.
type InjectionPhase uint8

const (
	InjectionIdle InjectionPhase = iota
	InjectionInjecting
)

// String returns the display name for an InjectionPhase.
func (p InjectionPhase) String() string {
	if p == InjectionInjecting {
		return "injecting"
	}
	return "idle"
}

// AttachResult is the outcome of a pick event.
type AttachResult uint8

const (
	AttachStarted    AttachResult = iota // injection began on the returned target
	AttachBusy                           // an injection is already running; pick ignored
	AttachNoTarget                       // no active bacterium exists
	AttachOutOfRange                     // nearest bacterium is beyond attach range
)

// String returns the display name for an AttachResult.
func (r AttachResult) String() string {
	switch r {
	case AttachStarted:
		return "started"
	case AttachBusy:
		return "busy"
	case AttachNoTarget:
		return "no_target"
	case AttachOutOfRange:
		return "out_of_range"
	}
	return "unknown"
}

// Injection is the single injection session. The zero value is idle.
// Times are session seconds.
type Injection struct {
	Phase     InjectionPhase
	Target    ecs.Entity
	StartTime float64
	Duration  float64
}

// InjectionDuration returns how long an injection takes with the given number
// of active bacteria. It grows with the population and is capped.
func InjectionDuration(cfg *config.InjectionConfig, population int) float64 {
	crowd := math.Min(cfg.CrowdPenaltyMS, float64(max(population, 0))*cfg.PerBacteriumMS)
	return (cfg.BaseDurationMS + crowd) / 1000
}

// Active reports whether an injection is running.
func (inj *Injection) Active() bool {
	return inj.Phase == InjectionInjecting
}

// Begin starts an injection. It is a no-op returning false if one is running.
func (inj *Injection) Begin(target ecs.Entity, now, duration float64) bool {
	if inj.Active() {
		return false
	}
	*inj = Injection{
		Phase:     InjectionInjecting,
		Target:    target,
		StartTime: now,
		Duration:  duration,
	}
	return true
}

// Progress returns the completed fraction in [0, 1]. Idle injections report 0.
func (inj *Injection) Progress(now float64) float64 {
	if !inj.Active() {
		return 0
	}
	if inj.Duration <= 0 {
		return 1
	}
	return clamp01((now - inj.StartTime) / inj.Duration)
}

// Done reports whether a running injection has reached full progress.
func (inj *Injection) Done(now float64) bool {
	return inj.Active() && inj.Progress(now) >= 1
}

// Clear returns the injection to idle and releases the target.
func (inj *Injection) Clear() {
	*inj = Injection{}
}

// TryAttach handles a pick event at point pick. The nearest active bacterium
// to the pick point is the candidate; it is accepted only if the player is
// within attach range of it. On success the injection begins and the target
// is marked infected. Returns the result, the candidate index (-1 if none)
// and the player-to-candidate distance.
func TryAttach(
	inj *Injection,
	cands []Candidate,
	pick, player r2.Vec,
	now float64,
	population int,
	cfg *config.InjectionConfig,
) (AttachResult, int, float64) {
	if inj.Active() {
		return AttachBusy, -1, 0
	}

	idx, _ := Nearest(cands, pick, Active)
	if idx < 0 {
		return AttachNoTarget, -1, 0
	}

	dist := r2.Norm(r2.Sub(cands[idx].Pos, player))
	if dist > cfg.AttachRange {
		return AttachOutOfRange, idx, dist
	}

	inj.Begin(cands[idx].Entity, now, InjectionDuration(cfg, population))
	cands[idx].State.Infected = true
	return AttachStarted, idx, dist
}
