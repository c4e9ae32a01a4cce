package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStrikerBreakthrough BookmarkType = "striker_breakthrough"
	BookmarkPopulationSurge     BookmarkType = "population_surge"
	BookmarkCultureCollapse     BookmarkType = "culture_collapse"
	BookmarkStalemate           BookmarkType = "stalemate"
)

// Bookmark marks a notable moment in a session.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	SimTime     float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"sim_time", b.SimTime,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive stats windows for notable swings.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentMin          int // lowest bacteria count since the last surge
	recentPeak         int // highest bacteria count since the last collapse
	haveRecent         bool
	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkStrikerBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPopulationSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkCollapse(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStalemate(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if !bd.haveRecent {
		bd.recentMin = stats.Bacteria
		bd.recentPeak = stats.Bacteria
		bd.haveRecent = true
	}
	if stats.Bacteria < bd.recentMin {
		bd.recentMin = stats.Bacteria
	}
	if stats.Bacteria > bd.recentPeak {
		bd.recentPeak = stats.Bacteria
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkStrikerBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.StrikerLyses
	}
	avg := float64(total) / float64(len(history))

	if stats.StrikerLyses >= 3 && float64(stats.StrikerLyses) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkStrikerBreakthrough,
			SimTime:     stats.WindowEnd,
			Description: fmt.Sprintf("Strikers lysed %d bacteria, average %.1f", stats.StrikerLyses, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationSurge(stats WindowStats) *Bookmark {
	if stats.Bacteria < bd.recentMin*2 || stats.Bacteria < bd.recentMin+15 {
		return nil
	}

	oldMin := bd.recentMin
	bd.recentMin = stats.Bacteria

	return &Bookmark{
		Type:        BookmarkPopulationSurge,
		SimTime:     stats.WindowEnd,
		Description: fmt.Sprintf("Bacteria surged from %d to %d", oldMin, stats.Bacteria),
	}
}

func (bd *BookmarkDetector) checkCollapse(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Bacteria)/float64(bd.recentPeak)
	if dropPercent <= 0.30 || stats.Bacteria >= bd.recentPeak-10 {
		return nil
	}

	oldPeak := bd.recentPeak
	bd.recentPeak = stats.Bacteria

	return &Bookmark{
		Type:        BookmarkCultureCollapse,
		SimTime:     stats.WindowEnd,
		Description: fmt.Sprintf("Culture fell %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Bacteria),
	}
}

func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.Bacteria < 10 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	var sum float64
	for _, h := range recent {
		sum += float64(h.Bacteria)
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := float64(h.Bacteria) - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 {
		return &Bookmark{
			Type:        BookmarkStalemate,
			SimTime:     stats.WindowEnd,
			Description: fmt.Sprintf("Culture held near %d bacteria for 5+ windows", stats.Bacteria),
		}
	}
	return nil
}
