package telemetry

import "github.com/pthm-cable/phage/components"

// Collector accumulates events within windows of simulated time and produces
// WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStart float64

	// Event counters for current window
	bacteriaSpawned    int
	playerLyses        int
	strikerLyses       int
	swarmersSpawned    int
	strikersSpawned    int
	injectionsStarted  int
	injectionsRejected int
	injectionsAborted  int
	injectDurations    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBacteriumSpawned:
		c.bacteriaSpawned++
	case EventBacteriumLysed:
		if ev.Cause == CauseStriker {
			c.strikerLyses++
		} else {
			c.playerLyses++
		}
	case EventHelperSpawned:
		if ev.Role == components.RoleStriker {
			c.strikersSpawned++
		} else {
			c.swarmersSpawned++
		}
	case EventInjectionStarted:
		c.injectionsStarted++
		c.injectDurations = append(c.injectDurations, ev.Amount)
	case EventInjectionRejected:
		c.injectionsRejected++
	case EventInjectionAborted:
		c.injectionsAborted++
	}
}

// RecordAll counts a batch of events.
func (c *Collector) RecordAll(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// PopulationSample is the state of the dish at flush time.
type PopulationSample struct {
	Bacteria int
	Helpers  int
	Strikers int
	Score    int

	// Distance of every active bacterium from the dish center
	RadialDistances []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, sample PopulationSample) WindowStats {
	injectMean, injectP50, injectP90 := ComputeQuantiles(c.injectDurations)
	radialMean, _, radialP90 := ComputeQuantiles(sample.RadialDistances)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,

		Bacteria: sample.Bacteria,
		Helpers:  sample.Helpers,
		Strikers: sample.Strikers,
		Score:    sample.Score,

		BacteriaSpawned: c.bacteriaSpawned,
		PlayerLyses:     c.playerLyses,
		StrikerLyses:    c.strikerLyses,
		SwarmersSpawned: c.swarmersSpawned,
		StrikersSpawned: c.strikersSpawned,

		InjectionsStarted:  c.injectionsStarted,
		InjectionsRejected: c.injectionsRejected,
		InjectionsAborted:  c.injectionsAborted,
		InjectMean:         injectMean,
		InjectP50:          injectP50,
		InjectP90:          injectP90,

		RadialMean: radialMean,
		RadialP90:  radialP90,
	}

	// Reset for next window
	c.windowStart = now
	c.bacteriaSpawned = 0
	c.playerLyses = 0
	c.strikerLyses = 0
	c.swarmersSpawned = 0
	c.strikersSpawned = 0
	c.injectionsStarted = 0
	c.injectionsRejected = 0
	c.injectionsAborted = 0
	c.injectDurations = c.injectDurations[:0]

	return stats
}

// WindowDuration returns the window length in simulated seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
