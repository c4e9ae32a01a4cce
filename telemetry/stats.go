package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"sim_time"`

	// Population at window end
	Bacteria int `csv:"bacteria"`
	Helpers  int `csv:"helpers"`
	Strikers int `csv:"strikers"`
	Score    int `csv:"score"`

	// Events during window
	BacteriaSpawned int `csv:"bacteria_spawned"`
	PlayerLyses     int `csv:"player_lyses"`
	StrikerLyses    int `csv:"striker_lyses"`
	SwarmersSpawned int `csv:"swarmers_spawned"`
	StrikersSpawned int `csv:"strikers_spawned"`

	// Injections
	InjectionsStarted  int     `csv:"injections_started"`
	InjectionsRejected int     `csv:"injections_rejected"`
	InjectionsAborted  int     `csv:"injections_aborted"`
	InjectMean         float64 `csv:"inject_mean"` // seconds
	InjectP50          float64 `csv:"inject_p50"`
	InjectP90          float64 `csv:"inject_p90"`

	// Spread of bacteria from the dish center (sampled at window end)
	RadialMean float64 `csv:"radial_mean"`
	RadialP90  float64 `csv:"radial_p90"`
}

// ComputeQuantiles returns the mean, median and 90th percentile of values.
// Returns zeros for an empty slice. values is not modified.
func ComputeQuantiles(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("sim_time", s.WindowEnd),
		slog.Int("bacteria", s.Bacteria),
		slog.Int("helpers", s.Helpers),
		slog.Int("strikers", s.Strikers),
		slog.Int("score", s.Score),
		slog.Int("bacteria_spawned", s.BacteriaSpawned),
		slog.Int("player_lyses", s.PlayerLyses),
		slog.Int("striker_lyses", s.StrikerLyses),
		slog.Int("injections_started", s.InjectionsStarted),
		slog.Int("injections_rejected", s.InjectionsRejected),
		slog.Int("injections_aborted", s.InjectionsAborted),
		slog.Float64("inject_mean", s.InjectMean),
		slog.Float64("radial_mean", s.RadialMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"sim_time", s.WindowEnd,
		"bacteria", s.Bacteria,
		"helpers", s.Helpers,
		"strikers", s.Strikers,
		"score", s.Score,
		"bacteria_spawned", s.BacteriaSpawned,
		"player_lyses", s.PlayerLyses,
		"striker_lyses", s.StrikerLyses,
		"swarmers_spawned", s.SwarmersSpawned,
		"strikers_spawned", s.StrikersSpawned,
		"injections_started", s.InjectionsStarted,
		"injections_rejected", s.InjectionsRejected,
		"injections_aborted", s.InjectionsAborted,
		"inject_mean", s.InjectMean,
		"inject_p50", s.InjectP50,
		"inject_p90", s.InjectP90,
		"radial_mean", s.RadialMean,
		"radial_p90", s.RadialP90,
	)
}
