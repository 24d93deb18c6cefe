package engine

import (
	"log"
	"sort"
	"strings"
	"sync"

	"craftboard/internal/statsapi"
)

// CategoryFetcher fetches the first leaderboard page of one category.
type CategoryFetcher func(category string) ([]statsapi.LeaderboardRow, error)

// CategoryTotal is the projected server-wide total for one leaderboard
// category. Projected = first-page sum × the extrapolation multiplier,
// an order-of-magnitude indicator rather than a measured figure.
type CategoryTotal struct {
	Category  string  `json:"category"`
	PageSum   float64 `json:"page_sum"`
	Projected float64 `json:"projected"`
	Failed    bool    `json:"failed,omitempty"`
}

// LeaderboardTotals fetches the first page of every category
// concurrently and projects server-wide totals. A failing category
// contributes a zero total and is flagged; it never aborts the batch.
// Results are keyed by category, not by completion order.
func LeaderboardTotals(fetch CategoryFetcher, categories []string, multiplier float64) []CategoryTotal {
	totals := make([]CategoryTotal, len(categories))
	var wg sync.WaitGroup

	for i, cat := range categories {
		wg.Add(1)
		go func(idx int, category string) {
			defer wg.Done()
			rows, err := fetch(category)
			if err != nil {
				log.Printf("[DEBUG] LeaderboardTotals: category %s failed: %v", category, err)
				totals[idx] = CategoryTotal{Category: category, Failed: true}
				return
			}
			var sum float64
			for _, r := range rows {
				sum += r.Value
			}
			totals[idx] = CategoryTotal{
				Category:  category,
				PageSum:   sum,
				Projected: sum * multiplier,
			}
		}(i, cat)
	}
	wg.Wait()
	return totals
}

// RollupSet accumulates every price row seen across the fetched pages of
// one listing session. Owned by the server for the lifetime of a full
// refresh; search/sort/paginate operate over the accumulated set without
// further upstream requests.
type RollupSet struct {
	mu    sync.RWMutex
	rows  []statsapi.PriceRow
	pages map[int]bool
}

// NewRollupSet creates an empty accumulation.
func NewRollupSet() *RollupSet {
	return &RollupSet{pages: make(map[int]bool)}
}

// AddPage appends the rows of one upstream page. Pages are keyed, so
// background fetches may land in any completion order and a page seen
// twice is ignored.
func (rs *RollupSet) AddPage(page int, rows []statsapi.PriceRow) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.pages[page] {
		return
	}
	rs.pages[page] = true
	rs.rows = append(rs.rows, rows...)
}

// Pages reports how many distinct upstream pages have been accumulated.
func (rs *RollupSet) Pages() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.pages)
}

// Rows returns a copy of the accumulated rows. Callers may filter and
// sort the copy freely without mutating the set.
func (rs *RollupSet) Rows() []statsapi.PriceRow {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]statsapi.PriceRow, len(rs.rows))
	copy(out, rs.rows)
	return out
}

// Price list sort keys for the client-side view.
const (
	SortNameAsc      = "name"
	SortAvgAsc       = "avg_asc"
	SortAvgDesc      = "avg_desc"
	SortListingsDesc = "listings"
)

// FilterPrices returns the rows whose name or id contains the query,
// case-insensitively. An empty query passes everything through.
func FilterPrices(rows []statsapi.PriceRow, query string) []statsapi.PriceRow {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)
	var out []statsapi.PriceRow
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.ID), q) {
			out = append(out, r)
		}
	}
	return out
}

// SortPrices returns a sorted copy of rows. Unknown keys fall back to
// name ascending. Ties break on id so the order is deterministic.
func SortPrices(rows []statsapi.PriceRow, key string) []statsapi.PriceRow {
	out := make([]statsapi.PriceRow, len(rows))
	copy(out, rows)

	less := func(i, j int) bool { return out[i].Name < out[j].Name }
	switch key {
	case SortAvgAsc:
		less = func(i, j int) bool {
			if out[i].AvgPrice != out[j].AvgPrice {
				return out[i].AvgPrice < out[j].AvgPrice
			}
			return out[i].ID < out[j].ID
		}
	case SortAvgDesc:
		less = func(i, j int) bool {
			if out[i].AvgPrice != out[j].AvgPrice {
				return out[i].AvgPrice > out[j].AvgPrice
			}
			return out[i].ID < out[j].ID
		}
	case SortListingsDesc:
		less = func(i, j int) bool {
			if out[i].Listings != out[j].Listings {
				return out[i].Listings > out[j].Listings
			}
			return out[i].ID < out[j].ID
		}
	}
	sort.SliceStable(out, less)
	return out
}

// PagePrices slices one client-side page out of the filtered/sorted
// view. Page size here is independent of upstream pagination. Returns
// the page slice and the total page count.
func PagePrices(rows []statsapi.PriceRow, page, perPage int) ([]statsapi.PriceRow, int) {
	if perPage <= 0 {
		perPage = 50
	}
	totalPages := (len(rows) + perPage - 1) / perPage
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(rows) {
		return nil, totalPages
	}
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], totalPages
}
