package engine

import (
	"fmt"
	"testing"

	"craftboard/internal/statsapi"
)

// makeRawPages builds consecutive raw leaderboard pages with the
// upstream overlap quirk: the last entry of page N is repeated as the
// first entry of page N+1.
func makeRawPages(pages int) [][]statsapi.LeaderboardRow {
	out := make([][]statsapi.LeaderboardRow, pages)
	global := 0 // 0-based global position in the de-duplicated sequence
	for p := 0; p < pages; p++ {
		var rows []statsapi.LeaderboardRow
		if p > 0 {
			// duplicate of previous page's last entry
			rows = append(rows, out[p-1][ItemsPerPage-1])
		}
		for len(rows) < ItemsPerPage {
			global++
			rows = append(rows, statsapi.LeaderboardRow{
				Username: fmt.Sprintf("player%04d", global),
				Value:    float64(1000000 - global),
			})
		}
		out[p] = rows
	}
	return out
}

func TestDedupOverlap_Page1IsUntouched(t *testing.T) {
	pages := makeRawPages(1)
	got := DedupOverlap(1, pages[0])
	if len(got) != ItemsPerPage {
		t.Fatalf("len = %d, want %d", len(got), ItemsPerPage)
	}
}

func TestDedupOverlap_LaterPagesDropOneEntry(t *testing.T) {
	pages := makeRawPages(2)
	if pages[0][ItemsPerPage-1] != pages[1][0] {
		t.Fatal("fixture broken: pages do not overlap")
	}
	got := DedupOverlap(2, pages[1])
	if len(got) != PageYield {
		t.Fatalf("len = %d, want %d", len(got), PageYield)
	}
	if got[0] == pages[0][ItemsPerPage-1] {
		t.Error("duplicate boundary entry survived de-dup")
	}
}

func TestRank_Page1(t *testing.T) {
	if r := Rank(1, 0); r != 1 {
		t.Errorf("Rank(1,0) = %d, want 1", r)
	}
	if r := Rank(1, 44); r != 45 {
		t.Errorf("Rank(1,44) = %d, want 45", r)
	}
}

func TestRank_Page2StartsAt46(t *testing.T) {
	if r := Rank(2, 0); r != 46 {
		t.Errorf("Rank(2,0) = %d, want 46", r)
	}
	if r := Rank(2, 43); r != 89 {
		t.Errorf("Rank(2,43) = %d, want 89", r)
	}
	if r := Rank(3, 0); r != 90 {
		t.Errorf("Rank(3,0) = %d, want 90", r)
	}
}

// Every page past the first yields 44 new entries, so deep pages must
// not drift: 45 + (p-2)*44 + 1 for the first entry of page p.
func TestRank_DeepPagesHaveNoBoundaryGaps(t *testing.T) {
	if r := Rank(4, 0); r != 134 {
		t.Errorf("Rank(4,0) = %d, want 134", r)
	}
	if r := Rank(10, 0); r != 398 {
		t.Errorf("Rank(10,0) = %d, want 398", r)
	}
	for p := 1; p < 50; p++ {
		lastIdx := PageYield - 1
		if p == 1 {
			lastIdx = ItemsPerPage - 1
		}
		if Rank(p, lastIdx)+1 != Rank(p+1, 0) {
			t.Fatalf("gap between page %d (rank %d) and page %d (rank %d)",
				p, Rank(p, lastIdx), p+1, Rank(p+1, 0))
		}
	}
}

// The de-duplicated rank sequence across consecutive pages must be
// strictly increasing by one, with no gaps or repeats.
func TestRankLeaderboardPage_ContiguousAcrossPages(t *testing.T) {
	raw := makeRawPages(4)
	wantRank := 1
	seen := make(map[string]bool)
	for p, rows := range raw {
		ranked := RankLeaderboardPage(p+1, rows)
		for _, r := range ranked {
			if r.Rank != wantRank {
				t.Fatalf("page %d: rank = %d, want %d", p+1, r.Rank, wantRank)
			}
			if seen[r.Username] {
				t.Fatalf("page %d: %s appears twice after de-dup", p+1, r.Username)
			}
			seen[r.Username] = true
			wantRank++
		}
	}
	// 45 + 3×44 distinct entries over four raw pages
	if wantRank-1 != ItemsPerPage+3*PageYield {
		t.Errorf("total entries = %d, want %d", wantRank-1, ItemsPerPage+3*PageYield)
	}
}

func TestRankLeaderboardPage_EmptyPage(t *testing.T) {
	if got := RankLeaderboardPage(2, nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
