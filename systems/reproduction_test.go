package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/phage/config"
)

func TestReproductionAdvance(t *testing.T) {
	var r Reproduction

	if n := r.Advance(0.4, 1); n != 0 {
		t.Errorf("Advance(0.4) = %d, want 0", n)
	}
	if n := r.Advance(0.7, 1); n != 1 {
		t.Errorf("Advance(0.7) = %d, want 1", n)
	}
	if math.Abs(r.Pending()-0.1) > 1e-9 {
		t.Errorf("Pending() = %v, want 0.1", r.Pending())
	}
	if n := r.Advance(2.5, 1); n != 2 {
		t.Errorf("Advance(2.5) = %d, want 2", n)
	}
	if n := r.Advance(-1, 1); n != 0 {
		t.Errorf("Advance(-1) = %d, want 0", n)
	}

	r.Reset()
	if r.Pending() != 0 {
		t.Errorf("Pending() after Reset = %v", r.Pending())
	}
}

func TestReproductionFrameRateIndependent(t *testing.T) {
	var coarse, fine Reproduction
	coarseFires, fineFires := 0, 0
	for i := 0; i < 20; i++ {
		coarseFires += coarse.Advance(0.125, 1)
	}
	for i := 0; i < 160; i++ {
		fineFires += fine.Advance(1.0/64, 1)
	}
	if coarseFires != 2 || fineFires != 2 {
		t.Errorf("fires = %d (coarse), %d (fine), want 2 each", coarseFires, fineFires)
	}
}

func TestRamp(t *testing.T) {
	cfg := config.Default().Reproduction

	tests := []struct {
		name         string
		elapsed      float64
		population   int
		wantAttempts int
		wantChance   float64
	}{
		{"start", 0, 0, 2, 0.30},
		{"one unit each", 40, 22, 4, 0.60},
		{"saturated", 1000, 200, 6, 0.92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts, chance := Ramp(&cfg, tt.elapsed, tt.population)
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
			if math.Abs(chance-tt.wantChance) > 1e-9 {
				t.Errorf("chance = %v, want %v", chance, tt.wantChance)
			}
		})
	}
}

func parentsAt(n int, p r2.Vec) []r2.Vec {
	parents := make([]r2.Vec, n)
	for i := range parents {
		parents[i] = p
	}
	return parents
}

func TestPlanSpawnsCap(t *testing.T) {
	cfg := config.Default().Reproduction
	cfg.MinChance, cfg.MaxChance = 1, 1
	d := testDish()
	rng := rand.New(rand.NewSource(3))

	if got := PlanSpawns(rng, &cfg, d, 100, parentsAt(cfg.MaxPopulation, d.Center)); len(got) != 0 {
		t.Errorf("at cap: %d spawns, want 0", len(got))
	}
	if got := PlanSpawns(rng, &cfg, d, 100, parentsAt(cfg.MaxPopulation-1, d.Center)); len(got) != 1 {
		t.Errorf("one below cap: %d spawns, want 1", len(got))
	}
}

func TestPlanSpawnsProperty(t *testing.T) {
	cfg := config.Default().Reproduction
	d := testDish()

	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		n := rapid.IntRange(0, cfg.MaxPopulation).Draw(t, "population")
		elapsed := rapid.Float64Range(0, 300).Draw(t, "elapsed")

		parents := make([]r2.Vec, n)
		for i := range parents {
			parents[i] = d.RandomPoint(rng)
		}

		spawns := PlanSpawns(rng, &cfg, d, elapsed, parents)
		attempts, _ := Ramp(&cfg, elapsed, n)

		if len(spawns) > attempts {
			t.Fatalf("%d spawns from %d attempts", len(spawns), attempts)
		}
		if n+len(spawns) > cfg.MaxPopulation {
			t.Fatalf("population %d exceeds cap %d", n+len(spawns), cfg.MaxPopulation)
		}
		for _, p := range spawns {
			if dist := r2.Norm(r2.Sub(p, d.Center)); dist > d.SpawnRadius+1e-9 {
				t.Fatalf("spawn %v at distance %v beyond spawn radius %v", p, dist, d.SpawnRadius)
			}
		}
	})
}
