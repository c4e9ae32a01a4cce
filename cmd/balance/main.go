// Command balance plays many seeded autopilot sessions headlessly and
// reports how the current configuration plays.
package main

import (
	"flag"
	"log/slog"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/game"
	"github.com/pthm-cable/phage/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	n := flag.Int("n", 64, "Number of sessions")
	seed := flag.Int64("seed", 1, "First seed; sessions use seed, seed+1, ...")
	workers := flag.Int("workers", 0, "Parallel sessions (0 = GOMAXPROCS)")
	maxTicks := flag.Int("max-ticks", 36000, "Per-session tick cap (0 = unlimited)")
	out := flag.String("out", "", "Write sessions CSV to this path")
	logSessions := flag.Bool("log-sessions", false, "Log every finished session")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	seeds := make([]int64, *n)
	for i := range seeds {
		seeds[i] = *seed + int64(i)
	}

	start := time.Now()
	records := game.RunBatch(game.BatchOptions{
		Config:      cfg,
		Seeds:       seeds,
		MaxTicks:    *maxTicks,
		Workers:     *workers,
		LogSessions: *logSessions,
	})

	if *out != "" {
		if err := writeSessions(*out, records); err != nil {
			slog.Error("failed to write sessions", "path", *out, "error", err)
			os.Exit(1)
		}
	}

	logSummary(records, cfg.Session.LoseThreshold, time.Since(start))
}

func writeSessions(path string, records []telemetry.SessionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := telemetry.WriteSessions(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// logSummary logs win rate and score/duration distributions. Sessions that
// hit the tick cap count as neither won nor lost.
func logSummary(records []telemetry.SessionRecord, loseThreshold int, wall time.Duration) {
	if len(records) == 0 {
		slog.Info("no sessions played")
		return
	}

	wins := make([]float64, len(records))
	scores := make([]float64, len(records))
	durations := make([]float64, len(records))
	strikerShare := make([]float64, 0, len(records))
	truncated := 0
	for i, r := range records {
		if r.Won {
			wins[i] = 1
		}
		if !r.Won && r.Bacteria < loseThreshold {
			truncated++
		}
		scores[i] = float64(r.Score)
		durations[i] = r.ElapsedSec
		if total := r.PlayerLyses + r.StrikerLyses; total > 0 {
			strikerShare = append(strikerShare, float64(r.StrikerLyses)/float64(total))
		}
	}

	meanScore, stdScore := stat.MeanStdDev(scores, nil)
	sort.Float64s(durations)

	slog.Info("balance",
		"sessions", len(records),
		"truncated", truncated,
		"win_rate", stat.Mean(wins, nil),
		"mean_score", meanScore,
		"std_score", stdScore,
		"mean_duration", stat.Mean(durations, nil),
		"p50_duration", stat.Quantile(0.5, stat.Empirical, durations, nil),
		"p90_duration", stat.Quantile(0.9, stat.Empirical, durations, nil),
		"striker_share", meanOrZero(strikerShare),
		"wall_ms", wall.Milliseconds(),
	)
}

func meanOrZero(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
