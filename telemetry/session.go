package telemetry

import "log/slog"

// SessionRecord summarizes one finished session.
type SessionRecord struct {
	ID           string  `csv:"session_id"`
	Seed         int64   `csv:"seed"`
	Won          bool    `csv:"won"`
	Score        int     `csv:"score"`
	ElapsedSec   float64 `csv:"elapsed"`
	Bacteria     int     `csv:"bacteria"`
	PeakBacteria int     `csv:"peak_bacteria"`
	Helpers      int     `csv:"helpers"`
	Strikers     int     `csv:"strikers"`
	PlayerLyses  int     `csv:"player_lyses"`
	StrikerLyses int     `csv:"striker_lyses"`
}

// Outcome returns "won" or "lost".
func (r SessionRecord) Outcome() string {
	if r.Won {
		return "won"
	}
	return "lost"
}

// LogSession logs the record using slog.
func (r SessionRecord) LogSession() {
	slog.Info("session_end",
		"session_id", r.ID,
		"seed", r.Seed,
		"outcome", r.Outcome(),
		"score", r.Score,
		"elapsed", r.ElapsedSec,
		"bacteria", r.Bacteria,
		"peak_bacteria", r.PeakBacteria,
		"helpers", r.Helpers,
		"strikers", r.Strikers,
		"player_lyses", r.PlayerLyses,
		"striker_lyses", r.StrikerLyses,
	)
}
