package engine

import (
	"craftboard/internal/statsapi"
)

const (
	// ItemsPerPage is the raw upstream page size for rank-ordered lists,
	// including the one-entry overlap at the page boundary.
	ItemsPerPage = 45
	// PageYield is the effective number of new entries a page contributes
	// after the overlap entry is dropped.
	PageYield = ItemsPerPage - 1
)

// DedupOverlap normalizes the upstream page-overlap quirk: the last entry
// of page N is repeated as the first entry of page N+1. For every page
// after the first, the duplicated first entry is dropped. Page 1 passes
// through untouched.
func DedupOverlap[T any](page int, items []T) []T {
	if page <= 1 || len(items) == 0 {
		return items
	}
	return items[1:]
}

// Rank computes the global rank of the entry at index i (0-based, after
// de-duplication) on page p. Page 1 contributes 45 entries; every later
// page contributes 44, so ranks run contiguously across page boundaries
// with no gaps.
func Rank(page, index int) int {
	if page <= 1 {
		return index + 1
	}
	return ItemsPerPage + (page-2)*PageYield + index + 1
}

// RankedRow is a leaderboard entry with its computed global rank.
type RankedRow struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Value    float64 `json:"value"`
}

// RankLeaderboardPage turns one raw leaderboard page into a clean ranked
// view: overlap dropped, global ranks attached.
func RankLeaderboardPage(page int, rows []statsapi.LeaderboardRow) []RankedRow {
	deduped := DedupOverlap(page, rows)
	ranked := make([]RankedRow, 0, len(deduped))
	for i, r := range deduped {
		ranked = append(ranked, RankedRow{
			Rank:     Rank(page, i),
			Username: r.Username,
			Value:    r.Value,
		})
	}
	return ranked
}
