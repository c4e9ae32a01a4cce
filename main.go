package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = play one session to the end)")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot steer the phage in graphical mode")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Config:    cfg,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Phage")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := newApp(opts, *autopilot)
	defer a.Unload()

	for !rl.WindowShouldClose() {
		a.Frame(rl.GetFrameTime())

		if *maxTicks > 0 && a.game.Tick() >= *maxTicks {
			break
		}
	}
}

// runHeadless plays autopilot sessions at a fixed dt. With maxTicks > 0,
// sessions are restarted until that many ticks have run in total;
// otherwise a single session is played to its end.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()
	pilot := game.NewAutopilot(opts.Config)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
	)

	total := 0
	for {
		remaining := 0
		if maxTicks > 0 {
			remaining = maxTicks - total
		}
		rec := g.RunHeadless(pilot, remaining)
		total += g.Tick()
		if !g.GameOver() {
			slog.Info("session_truncated",
				"session_id", rec.ID,
				"score", rec.Score,
				"bacteria", rec.Bacteria,
				"elapsed", rec.ElapsedSec,
			)
		}

		if maxTicks <= 0 || total >= maxTicks {
			slog.Info("headless run finished", "ticks", total)
			return
		}
		g.Reset()
	}
}
