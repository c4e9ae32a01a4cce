// Package game owns a dish session: the ECS world, the tick ordering, lysis
// and spawning, win/lose evaluation and the read-only snapshot handed to the
// presentation layer.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/systems"
	"github.com/pthm-cable/phage/telemetry"
)

// Options configures game initialization.
type Options struct {
	Seed      int64
	Config    *config.Config // nil uses config.Cfg()
	LogStats  bool           // log window stats, perf and bookmarks via slog
	OutputDir string         // directory for CSV output (empty = disabled)

	// QuietSessions skips the session_end log line. Batch runs set it.
	QuietSessions bool

	// StatsCallback is called for every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
	// SessionCallback is called once when a session ends.
	SessionCallback func(telemetry.SessionRecord)
}

// Game holds the complete session state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64
	dish systems.Dish

	world *ecs.World

	// Entity mappers, one per variant
	playerMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Player,
	]
	bacteriumMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Bacterium,
	]
	helperMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Helper,
	]

	bacteriaFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Bacterium,
	]
	helperFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Helper,
	]

	// Individual component mappers for lookups
	posMap       *ecs.Map[components.Position]
	velMap       *ecs.Map[components.Velocity]
	rotMap       *ecs.Map[components.Rotation]
	bodyMap      *ecs.Map[components.Body]
	motionMap    *ecs.Map[components.Motion]
	bacteriumMap *ecs.Map[components.Bacterium]

	player ecs.Entity

	// Per-tick scratch
	candidates     []systems.Candidate
	grid           *systems.SpatialGrid
	pendingHelpers []helperSpawn
	events         []telemetry.Event

	injection    systems.Injection
	reproduction systems.Reproduction

	// Session state
	sessionID    string
	tick         int
	elapsed      float64
	score        int
	gameOver     bool
	won          bool
	numBacteria  int
	numHelpers   int
	numStrikers  int
	peakBacteria int
	playerLyses  int
	strikerLyses int

	// Telemetry
	logStats         bool
	quietSessions    bool
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	sessionCallback  func(telemetry.SessionRecord)
}

// NewGameWithOptions creates a new game and seeds the first session.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	dish := systems.NewDish(cfg)

	g := &Game{
		cfg:             cfg,
		rng:             rand.New(rand.NewSource(opts.Seed)),
		seed:            opts.Seed,
		dish:            dish,
		grid:            systems.NewSpatialGrid(dish, cfg.Helpers.GridCellSize),
		logStats:        opts.LogStats,
		quietSessions:   opts.QuietSessions,
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback:   opts.StatsCallback,
		sessionCallback: opts.SessionCallback,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.Reset()
	return g
}

// Reset discards all session state and seeds a new session from the
// configuration. The RNG stream continues, so consecutive sessions differ.
func (g *Game) Reset() {
	world := ecs.NewWorld()

	g.world = world
	g.playerMapper = ecs.NewMap6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Player,
	](world)
	g.bacteriumMapper = ecs.NewMap5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Bacterium,
	](world)
	g.helperMapper = ecs.NewMap6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Helper,
	](world)
	g.bacteriaFilter = ecs.NewFilter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Bacterium,
	](world)
	g.helperFilter = ecs.NewFilter6[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Helper,
	](world)
	g.posMap = ecs.NewMap[components.Position](world)
	g.velMap = ecs.NewMap[components.Velocity](world)
	g.rotMap = ecs.NewMap[components.Rotation](world)
	g.bodyMap = ecs.NewMap[components.Body](world)
	g.motionMap = ecs.NewMap[components.Motion](world)
	g.bacteriumMap = ecs.NewMap[components.Bacterium](world)

	g.candidates = g.candidates[:0]
	g.grid.Rebuild(nil)
	g.pendingHelpers = g.pendingHelpers[:0]
	g.events = g.events[:0]
	g.injection.Clear()
	g.reproduction.Reset()

	g.sessionID = uuid.NewString()
	g.tick = 0
	g.elapsed = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.numBacteria = 0
	g.numHelpers = 0
	g.numStrikers = 0
	g.peakBacteria = 0
	g.playerLyses = 0
	g.strikerLyses = 0

	g.collector = telemetry.NewCollector(g.cfg.Telemetry.StatsWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	g.spawnPlayer()
	g.spawnInitialPopulation()

	slog.Info("session_start",
		"session_id", g.sessionID,
		"seed", g.seed,
		"bacteria", g.numBacteria,
		"needed_to_win", g.cfg.Session.NeededToWin,
		"lose_threshold", g.cfg.Session.LoseThreshold,
	)
}

// Unload releases output resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Dish returns the arena geometry.
func (g *Game) Dish() systems.Dish { return g.dish }

// Tick returns the number of simulation steps taken this session.
func (g *Game) Tick() int { return g.tick }

// Elapsed returns simulated seconds since the session started.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Score returns the number of lysed bacteria this session.
func (g *Game) Score() int { return g.score }

// BacteriaCount returns the number of active bacteria.
func (g *Game) BacteriaCount() int { return g.numBacteria }

// HelperCount returns the number of helpers.
func (g *Game) HelperCount() int { return g.numHelpers }

// StrikerCount returns the number of helpers with the striker role.
func (g *Game) StrikerCount() int { return g.numStrikers }

// GameOver reports whether the session has ended.
func (g *Game) GameOver() bool { return g.gameOver }

// Won reports whether the session ended in a win. Only meaningful after GameOver.
func (g *Game) Won() bool { return g.won }

// SessionID returns the current session's identifier.
func (g *Game) SessionID() string { return g.sessionID }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

// Injection returns a copy of the injection state.
func (g *Game) Injection() systems.Injection { return g.injection }

// PerfStats returns the rolling tick timing.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }
