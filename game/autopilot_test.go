package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/phage/config"
)

func TestAutopilotSteersAndPicks(t *testing.T) {
	cfg := config.Default()
	pilot := NewAutopilot(cfg)
	player := r2.Vec{X: 100, Y: 100}

	tests := []struct {
		name     string
		snap     Snapshot
		wantPick bool
		wantMove r2.Vec
	}{
		{
			name:     "far target",
			snap:     Snapshot{Player: PlayerView{Pos: player}, Bacteria: []BacteriumView{{Pos: r2.Vec{X: 400, Y: 100}}}},
			wantMove: r2.Vec{X: 1},
		},
		{
			name:     "close target",
			snap:     Snapshot{Player: PlayerView{Pos: player}, Bacteria: []BacteriumView{{Pos: r2.Vec{X: 100, Y: 130}}}},
			wantPick: true,
			wantMove: r2.Vec{Y: 1},
		},
		{
			name: "infected skipped",
			snap: Snapshot{Player: PlayerView{Pos: player}, Bacteria: []BacteriumView{
				{Pos: r2.Vec{X: 110, Y: 100}, Infected: true},
				{Pos: r2.Vec{X: 100, Y: 500}},
			}},
			wantMove: r2.Vec{Y: 1},
		},
		{
			name: "idle while injecting",
			snap: Snapshot{Player: PlayerView{Pos: player}, Injection: InjectionView{Active: true},
				Bacteria: []BacteriumView{{Pos: r2.Vec{X: 110, Y: 100}}}},
		},
		{
			name: "idle after game over",
			snap: Snapshot{Player: PlayerView{Pos: player}, GameOver: true,
				Bacteria: []BacteriumView{{Pos: r2.Vec{X: 110, Y: 100}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := pilot.Next(&tt.snap)
			if (in.Pick != nil) != tt.wantPick {
				t.Errorf("pick = %v, want %v", in.Pick != nil, tt.wantPick)
			}
			if r2.Norm(r2.Sub(in.Move, tt.wantMove)) > 1e-9 {
				t.Errorf("move = %v, want %v", in.Move, tt.wantMove)
			}
		})
	}
}

func TestRunHeadlessLysesBacteria(t *testing.T) {
	g := newTestGame(t, 21, nil)
	rec := g.RunHeadless(NewAutopilot(g.cfg), 3600)

	if rec.PlayerLyses < 1 {
		t.Errorf("autopilot lysed %d bacteria in a minute, want at least 1", rec.PlayerLyses)
	}
	if rec.Score != rec.PlayerLyses+rec.StrikerLyses {
		t.Errorf("score %d != player %d + striker %d", rec.Score, rec.PlayerLyses, rec.StrikerLyses)
	}
	if rec.ID != g.SessionID() {
		t.Errorf("record id %q, want %q", rec.ID, g.SessionID())
	}
}

func TestRunBatchDeterministicPerSeed(t *testing.T) {
	cfg := config.Default()
	records := RunBatch(BatchOptions{
		Config:   cfg,
		Seeds:    []int64{5, 6, 5},
		MaxTicks: 900,
		Workers:  2,
	})

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, seed := range []int64{5, 6, 5} {
		if records[i].Seed != seed {
			t.Errorf("record %d seed = %d, want %d", i, records[i].Seed, seed)
		}
	}
	a, b := records[0], records[2]
	if a.Score != b.Score || a.ElapsedSec != b.ElapsedSec || a.PeakBacteria != b.PeakBacteria {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	if a.ID == b.ID {
		t.Error("sessions should get distinct ids")
	}
}
