package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/game"
	"github.com/pthm-cable/phage/telemetry"
)

// Target describes the difficulty the tuner aims for.
type Target struct {
	WinRate     float64 // desired autopilot win fraction
	DurationSec float64 // desired mean session length
}

// Summary aggregates a batch of session records.
type Summary struct {
	WinRate      float64
	MeanScore    float64
	MeanDuration float64
	MeanPeak     float64
}

// Summarize computes batch statistics.
func Summarize(records []telemetry.SessionRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	wins := make([]float64, len(records))
	scores := make([]float64, len(records))
	durations := make([]float64, len(records))
	peaks := make([]float64, len(records))
	for i, r := range records {
		if r.Won {
			wins[i] = 1
		}
		scores[i] = float64(r.Score)
		durations[i] = r.ElapsedSec
		peaks[i] = float64(r.PeakBacteria)
	}

	return Summary{
		WinRate:      stat.Mean(wins, nil),
		MeanScore:    stat.Mean(scores, nil),
		MeanDuration: stat.Mean(durations, nil),
		MeanPeak:     stat.Mean(peaks, nil),
	}
}

// Fitness scores a batch summary against the target (lower = better).
// Win rate error dominates; duration error is relative to the target.
func (t Target) Fitness(s Summary) float64 {
	winErr := s.WinRate - t.WinRate
	durErr := 0.0
	if t.DurationSec > 0 {
		durErr = (s.MeanDuration - t.DurationSec) / t.DurationSec
	}
	return 4*winErr*winErr + durErr*durErr
}

// FitnessEvaluator runs autopilot batches and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	workers    int
	baseConfig *config.Config
	target     Target

	mu          sync.Mutex
	bestFitness float64
	bestRecords []telemetry.SessionRecord
	last        Summary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, workers int, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		workers:     workers,
		baseConfig:  baseCfg,
		target:      target,
		bestFitness: math.Inf(1),
	}
}

// BestRecords returns the session records from the best evaluation.
func (fe *FitnessEvaluator) BestRecords() []telemetry.SessionRecord {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRecords
}

// LastSummary returns the batch summary from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	records := game.RunBatch(game.BatchOptions{
		Config:   cfg,
		Seeds:    fe.seeds,
		MaxTicks: fe.maxTicks,
		Workers:  fe.workers,
	})
	summary := Summarize(records)
	fitness := fe.target.Fitness(summary)

	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.last = summary
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestRecords = records
	}
	return fitness
}

// copyConfig returns a copy of the base config that evaluations may mutate.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
