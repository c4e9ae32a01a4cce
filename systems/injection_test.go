package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/phage/config"
)

func TestInjectionDuration(t *testing.T) {
	cfg := config.Default().Injection

	tests := []struct {
		population int
		want       float64
	}{
		{0, 1.1},
		{10, 1.28},
		{50, 2.0},
		{100, 2.0},
		{-3, 1.1},
	}

	for _, tt := range tests {
		got := InjectionDuration(&cfg, tt.population)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("InjectionDuration(%d) = %v, want %v", tt.population, got, tt.want)
		}
	}
}

func TestInjectionDurationMonotonicProperty(t *testing.T) {
	cfg := config.Default().Injection
	lo := cfg.BaseDurationMS / 1000
	hi := (cfg.BaseDurationMS + cfg.CrowdPenaltyMS) / 1000

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 500).Draw(t, "a")
		b := rapid.IntRange(a, 500).Draw(t, "b")

		da, db := InjectionDuration(&cfg, a), InjectionDuration(&cfg, b)
		if da > db {
			t.Fatalf("duration(%d)=%v > duration(%d)=%v", a, da, b, db)
		}
		if da < lo || db > hi+1e-12 {
			t.Fatalf("durations %v, %v outside [%v, %v]", da, db, lo, hi)
		}
	})
}

func TestInjectionProgress(t *testing.T) {
	var inj Injection
	if inj.Active() || inj.Progress(5) != 0 || inj.Done(5) {
		t.Fatal("zero value should be idle")
	}

	if !inj.Begin(ecs.Entity{}, 10, 2) {
		t.Fatal("Begin on idle injection returned false")
	}
	if inj.Begin(ecs.Entity{}, 11, 5) {
		t.Error("Begin while injecting should be rejected")
	}
	if inj.StartTime != 10 || inj.Duration != 2 {
		t.Errorf("second Begin changed the session: %+v", inj)
	}

	tests := []struct {
		now      float64
		progress float64
		done     bool
	}{
		{9, 0, false},
		{10, 0, false},
		{11, 0.5, false},
		{12, 1, true},
		{20, 1, true},
	}
	for _, tt := range tests {
		if got := inj.Progress(tt.now); math.Abs(got-tt.progress) > 1e-9 {
			t.Errorf("Progress(%v) = %v, want %v", tt.now, got, tt.progress)
		}
		if got := inj.Done(tt.now); got != tt.done {
			t.Errorf("Done(%v) = %v, want %v", tt.now, got, tt.done)
		}
	}

	inj.Clear()
	if inj.Active() {
		t.Error("Clear should return to idle")
	}
}

func TestTryAttach(t *testing.T) {
	cfg := config.Default().Injection
	player := r2.Vec{}

	tests := []struct {
		name     string
		busy     bool
		cands    []Candidate
		pick     r2.Vec
		want     AttachResult
		wantIdx  int
		wantDist float64
	}{
		{
			name:    "busy",
			busy:    true,
			cands:   candidatesAt(r2.Vec{X: 10}),
			want:    AttachBusy,
			wantIdx: -1,
		},
		{
			name:    "no target",
			want:    AttachNoTarget,
			wantIdx: -1,
		},
		{
			name:     "out of range",
			cands:    candidatesAt(r2.Vec{X: 200}),
			pick:     r2.Vec{X: 200},
			want:     AttachOutOfRange,
			wantIdx:  0,
			wantDist: 200,
		},
		{
			name:     "nearest to pick point wins",
			cands:    candidatesAt(r2.Vec{X: 10}, r2.Vec{X: 60}),
			pick:     r2.Vec{X: 58},
			want:     AttachStarted,
			wantIdx:  1,
			wantDist: 60,
		},
		{
			name:     "exactly at range",
			cands:    candidatesAt(r2.Vec{Y: cfg.AttachRange}),
			pick:     r2.Vec{Y: cfg.AttachRange},
			want:     AttachStarted,
			wantIdx:  0,
			wantDist: cfg.AttachRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inj Injection
			if tt.busy {
				inj.Begin(ecs.Entity{}, 0, 1)
			}

			got, idx, dist := TryAttach(&inj, tt.cands, tt.pick, player, 3, 10, &cfg)
			if got != tt.want {
				t.Fatalf("result = %v, want %v", got, tt.want)
			}
			if idx != tt.wantIdx {
				t.Errorf("idx = %d, want %d", idx, tt.wantIdx)
			}
			if math.Abs(dist-tt.wantDist) > 1e-9 {
				t.Errorf("dist = %v, want %v", dist, tt.wantDist)
			}

			if got != AttachStarted {
				for i, c := range tt.cands {
					if c.State.Infected {
						t.Errorf("candidate %d infected after %v", i, got)
					}
				}
				return
			}
			if !tt.cands[idx].State.Infected {
				t.Error("target not marked infected")
			}
			if !inj.Active() || inj.StartTime != 3 {
				t.Errorf("injection = %+v, want active from t=3", inj)
			}
			if want := InjectionDuration(&cfg, 10); inj.Duration != want {
				t.Errorf("duration = %v, want %v", inj.Duration, want)
			}
		})
	}
}

func TestTryAttachSkipsLysed(t *testing.T) {
	cfg := config.Default().Injection
	cands := candidatesAt(r2.Vec{X: 5}, r2.Vec{X: 40})
	cands[0].State.Lysed = true

	var inj Injection
	got, idx, _ := TryAttach(&inj, cands, r2.Vec{X: 5}, r2.Vec{}, 0, 1, &cfg)
	if got != AttachStarted || idx != 1 {
		t.Errorf("TryAttach = (%v, %d), want (started, 1)", got, idx)
	}
}
