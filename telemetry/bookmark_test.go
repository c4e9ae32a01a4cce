package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StrikerBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEnd:    float64(i * 10),
			Bacteria:     30,
			StrikerLyses: 1,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEnd:    50,
		Bacteria:     30,
		StrikerLyses: 6,
	})
	if !hasBookmark(bookmarks, BookmarkStrikerBreakthrough) {
		t.Errorf("expected striker_breakthrough bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_PopulationSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), Bacteria: 12})
	}

	bookmarks := bd.Check(WindowStats{WindowEnd: 30, Bacteria: 40})
	if !hasBookmark(bookmarks, BookmarkPopulationSurge) {
		t.Errorf("expected population_surge bookmark, got %v", bookmarks)
	}

	// Minimum resets after triggering
	bookmarks = bd.Check(WindowStats{WindowEnd: 40, Bacteria: 45})
	if hasBookmark(bookmarks, BookmarkPopulationSurge) {
		t.Error("surge should not retrigger without a new low")
	}
}

func TestBookmarkDetector_CultureCollapse(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i * 10), Bacteria: 80})
	}

	bookmarks := bd.Check(WindowStats{WindowEnd: 50, Bacteria: 40})
	if !hasBookmark(bookmarks, BookmarkCultureCollapse) {
		t.Errorf("expected culture_collapse bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEnd: float64(i * 10), Bacteria: 50})
		if hasBookmark(bookmarks, BookmarkStalemate) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stalemate fired %d times, want exactly 1", fired)
	}
}

func TestBookmarkDetector_FirstWindowSilent(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if got := bd.Check(WindowStats{Bacteria: 100, StrikerLyses: 50}); len(got) != 0 {
		t.Errorf("first window produced bookmarks: %v", got)
	}
}
