// Package main provides CMA-ES tuning of difficulty parameters against the
// autopilot.
package main

import (
	"github.com/pthm-cable/phage/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults match config/defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Reproduction pressure
			{Name: "base_chance", Path: "reproduction.base_chance", Min: 0.1, Max: 0.6, Default: 0.30},
			{Name: "time_chance", Path: "reproduction.time_chance", Min: 0.0, Max: 0.4, Default: 0.16},
			{Name: "pop_chance", Path: "reproduction.pop_chance", Min: 0.0, Max: 0.4, Default: 0.14},
			{Name: "time_ramp_seconds", Path: "reproduction.time_ramp_seconds", Min: 15, Max: 120, Default: 40},
			// Helpers
			{Name: "striker_chance", Path: "helpers.striker_chance", Min: 0.0, Max: 0.8, Default: 0.35},
			{Name: "strike_chance_per_sec", Path: "helpers.strike_chance_per_sec", Min: 0.1, Max: 2.0, Default: 0.8},
			// Injection
			{Name: "base_duration_ms", Path: "injection.base_duration_ms", Min: 500, Max: 2500, Default: 1100},
			{Name: "per_bacterium_ms", Path: "injection.per_bacterium_ms", Min: 0, Max: 40, Default: 18},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	cfg.Reproduction.BaseChance = next()
	cfg.Reproduction.TimeChance = next()
	cfg.Reproduction.PopChance = next()
	cfg.Reproduction.TimeRampSeconds = next()

	cfg.Helpers.StrikerChance = next()
	cfg.Helpers.StrikeChancePerSec = next()

	cfg.Injection.BaseDurationMS = next()
	cfg.Injection.PerBacteriumMS = next()

	cfg.ComputeDerived()
}
