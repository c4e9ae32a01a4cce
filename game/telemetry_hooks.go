package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/telemetry"
)

// flushTelemetry records this tick's events and flushes the stats window when due.
func (g *Game) flushTelemetry() {
	g.collector.RecordAll(g.events)
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.elapsed, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// samplePopulation collects the dish state for a stats window.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	positions := g.activeBacteriaPositions()
	radial := make([]float64, len(positions))
	for i, p := range positions {
		radial[i] = r2.Norm(r2.Sub(p, g.dish.Center))
	}

	return telemetry.PopulationSample{
		Bacteria:        g.numBacteria,
		Helpers:         g.numHelpers,
		Strikers:        g.numStrikers,
		Score:           g.score,
		RadialDistances: radial,
	}
}

// sessionRecord summarizes the current session.
func (g *Game) sessionRecord() telemetry.SessionRecord {
	return telemetry.SessionRecord{
		ID:           g.sessionID,
		Seed:         g.seed,
		Won:          g.won,
		Score:        g.score,
		ElapsedSec:   g.elapsed,
		Bacteria:     g.numBacteria,
		PeakBacteria: g.peakBacteria,
		Helpers:      g.numHelpers,
		Strikers:     g.numStrikers,
		PlayerLyses:  g.playerLyses,
		StrikerLyses: g.strikerLyses,
	}
}

// recordSession reports a finished session to the log, callback and CSV.
func (g *Game) recordSession() {
	r := g.sessionRecord()
	if !g.quietSessions {
		r.LogSession()
	}

	if g.sessionCallback != nil {
		g.sessionCallback(r)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteSession(r); err != nil {
			slog.Error("failed to write session", "error", err)
		}
	}
}
