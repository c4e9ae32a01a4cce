package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/phage/config"
	"github.com/pthm-cable/phage/telemetry"
)

// RunHeadless plays the current session with the autopilot at a fixed dt
// until it ends or maxTicks steps have run (0 = unlimited). Returns the
// session record.
func (g *Game) RunHeadless(pilot *Autopilot, maxTicks int) telemetry.SessionRecord {
	dt := g.cfg.Physics.DT
	for !g.gameOver {
		if maxTicks > 0 && g.tick >= maxTicks {
			break
		}
		g.Step(dt, pilot.Next(g.Snapshot()))
	}
	return g.sessionRecord()
}

// batchJob is one session to play.
type batchJob struct {
	index int
	seed  int64
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Config   *config.Config // shared read-only by all sessions
	Seeds    []int64
	MaxTicks int // per session, 0 = unlimited
	Workers  int // 0 = GOMAXPROCS

	// LogSessions keeps the per-session session_end log line.
	LogSessions bool
}

// RunBatch plays one autopilot session per seed across a pool of workers.
// Records are returned in seed order.
func RunBatch(opts BatchOptions) []telemetry.SessionRecord {
	if opts.Config == nil {
		opts.Config = config.Cfg()
	}
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(opts.Seeds) {
		numWorkers = len(opts.Seeds)
	}

	records := make([]telemetry.SessionRecord, len(opts.Seeds))
	workChan := make(chan batchJob, numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range workChan {
				g := NewGameWithOptions(Options{
					Seed:          job.seed,
					Config:        opts.Config,
					QuietSessions: !opts.LogSessions,
				})
				// Each worker writes only its own slot
				records[job.index] = g.RunHeadless(NewAutopilot(opts.Config), opts.MaxTicks)
				g.Unload()
			}
		}()
	}

	for i, seed := range opts.Seeds {
		workChan <- batchJob{index: i, seed: seed}
	}
	close(workChan)
	wg.Wait()

	return records
}
