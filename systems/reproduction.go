package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/config"
)

// Reproduction accumulates simulated time and fires the reproduction tick on
// a fixed period, independent of frame rate.
type Reproduction struct {
	accum float64
}

// Advance adds dt seconds and returns how many reproduction ticks are due.
func (r *Reproduction) Advance(dt, period float64) int {
	if dt <= 0 || period <= 0 {
		return 0
	}
	r.accum += dt
	fires := 0
	for r.accum >= period {
		r.accum -= period
		fires++
	}
	return fires
}

// Pending returns the accumulated time toward the next reproduction tick.
func (r *Reproduction) Pending() float64 {
	return r.accum
}

// Reset discards accumulated time.
func (r *Reproduction) Reset() {
	r.accum = 0
}

// Ramp returns the number of spawn attempts and per-attempt chance for a
// reproduction tick at the given elapsed time and population.
func Ramp(cfg *config.ReproductionConfig, elapsed float64, population int) (int, float64) {
	timeRamp := clampFloat(elapsed/cfg.TimeRampSeconds, 0, cfg.TimeRampMax)
	popRamp := clampFloat(float64(population)/cfg.PopRampCount, 0, cfg.PopRampMax)

	attempts := cfg.BaseAttempts + int(math.Floor(timeRamp+popRamp))
	chance := clampFloat(
		cfg.BaseChance+cfg.TimeChance*timeRamp+cfg.PopChance*popRamp,
		cfg.MinChance, cfg.MaxChance,
	)
	return attempts, chance
}

// PlanSpawns runs one reproduction tick and returns where new bacteria appear.
// parents are the positions of the currently active bacteria. Each attempt
// draws once; a successful draw spawns next to a random parent (or anywhere in
// the dish when there are none) unless the population cap is reached.
func PlanSpawns(rng *rand.Rand, cfg *config.ReproductionConfig, dish Dish, elapsed float64, parents []r2.Vec) []r2.Vec {
	population := len(parents)
	attempts, chance := Ramp(cfg, elapsed, population)

	var spawns []r2.Vec
	for i := 0; i < attempts; i++ {
		if rng.Float64() >= chance || population+len(spawns) >= cfg.MaxPopulation {
			continue
		}

		var p r2.Vec
		if population > 0 {
			parent := parents[rng.Intn(population)]
			p = dish.ClampSpawn(OffsetAround(rng, parent, cfg.OffsetMin, cfg.OffsetMax))
		} else {
			p = dish.RandomPoint(rng)
		}
		spawns = append(spawns, p)
	}
	return spawns
}
