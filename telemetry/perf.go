package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of the simulation tick.
type Phase int

// Tick phases in execution order.
const (
	PhaseInput Phase = iota
	PhasePlayer
	PhaseHelpers
	PhaseBacteria
	PhaseContainment
	PhaseInjection
	PhaseReproduction
	PhaseCleanup
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"input", "player", "helpers", "bacteria", "containment",
	"injection", "reproduction", "cleanup", "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists all phases in tick order.
var Phases = []Phase{
	PhaseInput, PhasePlayer, PhaseHelpers, PhaseBacteria, PhaseContainment,
	PhaseInjection, PhaseReproduction, PhaseCleanup, PhaseTelemetry,
}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

type tickSample struct {
	total  time.Duration
	phases PhaseTimes
}

// PerfCollector keeps per-phase tick timings over a rolling window.
type PerfCollector struct {
	samples []tickSample
	next    int
	count   int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]tickSample, windowSize)}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick closes the last phase and records the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.current.total = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats is the window average of tick timings.
type PerfStats struct {
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	PhaseAvg        PhaseTimes
	PhasePct        [numPhases]float64 // share of the average tick, 0-100
	TicksPerSecond  float64
}

// Stats averages the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum PhaseTimes
	for _, sample := range p.samples[:p.count] {
		total += sample.total
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		for i, d := range sample.phases {
			phaseSum[i] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	for i := range phaseSum {
		s.PhaseAvg[i] = phaseSum[i] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the window timings, listing phases above 0.1% of the tick.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	SimTime        float64 `csv:"sim_time"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	InputPct       float64 `csv:"input_pct"`
	PlayerPct      float64 `csv:"player_pct"`
	HelpersPct     float64 `csv:"helpers_pct"`
	BacteriaPct    float64 `csv:"bacteria_pct"`
	ContainmentPct float64 `csv:"containment_pct"`
	InjectionPct   float64 `csv:"injection_pct"`
	ReproPct       float64 `csv:"reproduction_pct"`
	CleanupPct     float64 `csv:"cleanup_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		SimTime:        simTime,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		InputPct:       s.PhasePct[PhaseInput],
		PlayerPct:      s.PhasePct[PhasePlayer],
		HelpersPct:     s.PhasePct[PhaseHelpers],
		BacteriaPct:    s.PhasePct[PhaseBacteria],
		ContainmentPct: s.PhasePct[PhaseContainment],
		InjectionPct:   s.PhasePct[PhaseInjection],
		ReproPct:       s.PhasePct[PhaseReproduction],
		CleanupPct:     s.PhasePct[PhaseCleanup],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
