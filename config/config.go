// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Camera       CameraConfig       `yaml:"camera"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Dish         DishConfig         `yaml:"dish"`
	Player       PlayerConfig       `yaml:"player"`
	Bacteria     BacteriaConfig     `yaml:"bacteria"`
	Helpers      HelpersConfig      `yaml:"helpers"`
	Injection    InjectionConfig    `yaml:"injection"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Session      SessionConfig      `yaml:"session"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds graphical-mode viewport settings.
type CameraConfig struct {
	MaxZoom    float64 `yaml:"max_zoom"`
	ZoomStep   float64 `yaml:"zoom_step"`   // Zoom factor per mouse wheel notch
	FollowRate float64 `yaml:"follow_rate"` // How quickly a zoomed camera tracks the phage (1/s)
}

// PhysicsConfig holds host loop timing.
type PhysicsConfig struct {
	DT    float64 `yaml:"dt"`     // Fixed step used by headless runs (seconds)
	MaxDT float64 `yaml:"max_dt"` // Frame deltas above this are clamped (seconds)
}

// DishConfig holds the arena geometry.
// The dish is centered on the screen; only its radius is configurable.
type DishConfig struct {
	Radius         float64 `yaml:"radius"`
	BoundaryFactor float64 `yaml:"boundary_factor"` // Entities are kept within radius * this
	SpawnFactor    float64 `yaml:"spawn_factor"`    // Spawn sampling uses radius * this
	BounceDamping  float64 `yaml:"bounce_damping"`  // Velocity scale after reflecting off the boundary
}

// PlayerConfig holds phage movement parameters.
type PlayerConfig struct {
	Radius   float64 `yaml:"radius"`
	Accel    float64 `yaml:"accel"`     // Acceleration at full input deflection
	Drag     float64 `yaml:"drag"`      // Deceleration applied when there is no input
	MaxSpeed float64 `yaml:"max_speed"` // Velocity magnitude cap
}

// BacteriaConfig holds bacterium spawn and drift parameters.
type BacteriaConfig struct {
	Initial          int     `yaml:"initial"`
	Radius           float64 `yaml:"radius"`             // Radius at scale 1
	ScaleMin         float64 `yaml:"scale_min"`          // Scale hint lower bound at spawn
	ScaleMax         float64 `yaml:"scale_max"`          // Scale hint upper bound at spawn
	InitialSpeed     float64 `yaml:"initial_speed"`      // Per-axis velocity range at spawn
	Jitter           float64 `yaml:"jitter"`             // Random per-axis acceleration (units/s^2)
	InfectedJitter   float64 `yaml:"infected_jitter"`    // Jitter while being injected
	MaxSpeed         float64 `yaml:"max_speed"`          // Per-axis velocity clamp
	InfectedMaxSpeed float64 `yaml:"infected_max_speed"` // Per-axis clamp while being injected
	Spin             float64 `yaml:"spin"`               // Cosmetic rotation rate (rad/s)
	InfectedSpin     float64 `yaml:"infected_spin"`
}

// HelpersConfig holds helper spawning and AI parameters.
type HelpersConfig struct {
	Max                int     `yaml:"max"`                   // Global helper cap
	PerLysis           int     `yaml:"per_lysis"`             // Helpers spawned per lysis (subject to cap)
	SpawnJitter        float64 `yaml:"spawn_jitter"`          // Max offset from the lysed bacterium
	StrikerChance      float64 `yaml:"striker_chance"`        // Probability a new helper is a striker
	Radius             float64 `yaml:"radius"`
	Drag               float64 `yaml:"drag"`
	MaxSpeed           float64 `yaml:"max_speed"`
	SeekRange          float64 `yaml:"seek_range"`
	SeekAccel          float64 `yaml:"seek_accel"`
	SeekTurnRate       float64 `yaml:"seek_turn_rate"`
	OrbitRange         float64 `yaml:"orbit_range"`
	OrbitAccel         float64 `yaml:"orbit_accel"`
	WanderAccel        float64 `yaml:"wander_accel"`
	WanderTurnRate     float64 `yaml:"wander_turn_rate"`
	WanderJitter       float64 `yaml:"wander_jitter"`         // Max wander angular velocity (rad/s)
	StrikeRange        float64 `yaml:"strike_range"`
	StrikeChancePerSec float64 `yaml:"strike_chance_per_sec"` // Striker lysis probability per second in range
	StrikeCooldown     float64 `yaml:"strike_cooldown"`       // Seconds
	RecoilSpeed        float64 `yaml:"recoil_speed"`
	GridCellSize       float64 `yaml:"grid_cell_size"` // Spatial index cell size for target searches
}

// InjectionConfig holds attach and injection timing parameters.
type InjectionConfig struct {
	AttachRange    float64 `yaml:"attach_range"`
	BaseDurationMS float64 `yaml:"base_duration_ms"`
	PerBacteriumMS float64 `yaml:"per_bacterium_ms"` // Added per active bacterium
	CrowdPenaltyMS float64 `yaml:"crowd_penalty_ms"` // Cap on the population-dependent part
}

// ReproductionConfig holds the spawner/difficulty controller parameters.
type ReproductionConfig struct {
	Period          float64 `yaml:"period"`            // Seconds between reproduction ticks
	TimeRampSeconds float64 `yaml:"time_ramp_seconds"` // timeRamp = elapsed / this
	TimeRampMax     float64 `yaml:"time_ramp_max"`
	PopRampCount    float64 `yaml:"pop_ramp_count"` // popRamp = n / this
	PopRampMax      float64 `yaml:"pop_ramp_max"`
	BaseAttempts    int     `yaml:"base_attempts"`
	BaseChance      float64 `yaml:"base_chance"`
	TimeChance      float64 `yaml:"time_chance"`
	PopChance       float64 `yaml:"pop_chance"`
	MinChance       float64 `yaml:"min_chance"`
	MaxChance       float64 `yaml:"max_chance"`
	MaxPopulation   int     `yaml:"max_population"` // Hard bacterium cap
	OffsetMin       float64 `yaml:"offset_min"`     // Child offset from parent
	OffsetMax       float64 `yaml:"offset_max"`
}

// SessionConfig holds win/lose thresholds.
type SessionConfig struct {
	NeededToWin   int     `yaml:"needed_to_win"`
	LoseThreshold int     `yaml:"lose_threshold"`
	IntroSeconds  float64 `yaml:"intro_seconds"` // Intro overlay length in graphical mode (0 = none)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Simulated seconds per stats row
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CenterX        float64 // Dish center, screen centered
	CenterY        float64
	BoundaryRadius float64 // Dish.Radius * Dish.BoundaryFactor
	SpawnRadius    float64 // Dish.Radius * Dish.SpawnFactor
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.Physics.DT <= 0:
		return errors.New("physics.dt must be positive")
	case c.Dish.Radius <= 0:
		return errors.New("dish.radius must be positive")
	case c.Dish.BoundaryFactor <= 0 || c.Dish.BoundaryFactor > 1:
		return errors.New("dish.boundary_factor must be in (0, 1]")
	case c.Dish.SpawnFactor <= 0 || c.Dish.SpawnFactor > c.Dish.BoundaryFactor:
		return errors.New("dish.spawn_factor must be in (0, boundary_factor]")
	case c.Bacteria.Initial < 0:
		return errors.New("bacteria.initial must not be negative")
	case c.Bacteria.ScaleMin <= 0 || c.Bacteria.ScaleMax < c.Bacteria.ScaleMin:
		return errors.New("bacteria.scale_min/scale_max out of order")
	case c.Helpers.Max < 0:
		return errors.New("helpers.max must not be negative")
	case c.Helpers.GridCellSize <= 0:
		return errors.New("helpers.grid_cell_size must be positive")
	case c.Helpers.StrikerChance < 0 || c.Helpers.StrikerChance > 1:
		return errors.New("helpers.striker_chance must be in [0, 1]")
	case c.Reproduction.Period <= 0:
		return errors.New("reproduction.period must be positive")
	case c.Reproduction.TimeRampSeconds <= 0:
		return errors.New("reproduction.time_ramp_seconds must be positive")
	case c.Reproduction.PopRampCount <= 0:
		return errors.New("reproduction.pop_ramp_count must be positive")
	case c.Reproduction.MaxPopulation <= 0:
		return errors.New("reproduction.max_population must be positive")
	case c.Reproduction.OffsetMax < c.Reproduction.OffsetMin:
		return errors.New("reproduction.offset_max below offset_min")
	case c.Session.NeededToWin <= 0:
		return errors.New("session.needed_to_win must be positive")
	case c.Session.LoseThreshold <= 0 || c.Session.LoseThreshold > c.Reproduction.MaxPopulation:
		return fmt.Errorf("session.lose_threshold must be in (0, %d]", c.Reproduction.MaxPopulation)
	case c.Telemetry.StatsWindow <= 0:
		return errors.New("telemetry.stats_window must be positive")
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating a loaded config in place.
func (c *Config) ComputeDerived() {
	c.Derived.CenterX = float64(c.Screen.Width) / 2
	c.Derived.CenterY = float64(c.Screen.Height) / 2
	c.Derived.BoundaryRadius = c.Dish.Radius * c.Dish.BoundaryFactor
	c.Derived.SpawnRadius = c.Dish.Radius * c.Dish.SpawnFactor
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
