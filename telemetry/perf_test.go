package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePlayer)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseHelpers)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MaxTickDuration < stats.AvgTickDuration {
		t.Errorf("max %v below avg %v", stats.MaxTickDuration, stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhasePlayer] <= 0 || stats.PhaseAvg[PhaseHelpers] <= 0 {
		t.Errorf("phase averages not tracked: %v", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseBacteria] != 0 {
		t.Errorf("untouched phase has time %v", stats.PhaseAvg[PhaseBacteria])
	}
	if stats.PhasePct[PhaseHelpers] <= stats.PhasePct[PhasePlayer] {
		t.Errorf("helpers %.1f%% should exceed player %.1f%%",
			stats.PhasePct[PhaseHelpers], stats.PhasePct[PhasePlayer])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePlayer)
		pc.EndTick()
	}

	if pc.count != 5 {
		t.Errorf("count = %d, want window size 5", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector stats = %+v, want zero", stats)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInput, "input"},
		{PhaseReproduction, "reproduction"},
		{PhaseTelemetry, "telemetry"},
		{Phase(-1), "unknown"},
		{numPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
	if len(Phases) != int(numPhases) {
		t.Errorf("Phases has %d entries, want %d", len(Phases), numPhases)
	}
}
