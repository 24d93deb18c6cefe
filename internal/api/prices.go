package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"craftboard/internal/engine"
	"craftboard/internal/logger"
	"craftboard/internal/statsapi"
)

// handlePrices serves the client-side view over the accumulated price
// list: filter, sort and paginate run locally over the session rollup
// set, independent of upstream pagination.
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	rollup, meta, err := s.ensureRollup()
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	rows := rollup.Rows()
	filtered := engine.FilterPrices(rows, strings.TrimSpace(r.URL.Query().Get("search")))
	sorted := engine.SortPrices(filtered, r.URL.Query().Get("sort"))
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 50)
	view, totalPages := engine.PagePrices(sorted, page, perPage)

	writeJSON(w, map[string]interface{}{
		"items":       view,
		"page":        page,
		"total_pages": totalPages,
		"total_items": len(sorted),
		"meta":        meta,
		"empty":       len(view) == 0,
	})
}

// handlePriceTrend computes the sparkline/trend for one item from the
// locally observed price history. An empty or missing store degrades to
// a neutral flat result, never an error.
func (s *Server) handlePriceTrend(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	var points []engine.PricePoint
	if s.db != nil {
		points = s.db.ReadPriceHistory(itemID, time.Now())
	}
	writeJSON(w, map[string]interface{}{
		"item_id": itemID,
		"points":  len(points),
		"trend":   engine.ComputeTrend(points),
	})
}

// ensureRollup returns the accumulated price rows for the current
// session, rebuilding the accumulation when the upstream cache window
// has rolled over. Page fetches beyond the first run concurrently and
// may settle in any order; the set aggregates them by page key.
func (s *Server) ensureRollup() (*engine.RollupSet, *statsapi.PricesMeta, error) {
	s.rollupMu.Lock()
	defer s.rollupMu.Unlock()

	ttl := time.Duration(s.config().PricesCacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if s.rollup != nil && time.Since(s.rollupTime) < ttl {
		meta := s.rollupMeta
		return s.rollup, &meta, nil
	}

	first, err := s.client.FetchPricesPageCached(1)
	if err != nil {
		// A stale accumulation beats a blank page when upstream is down.
		if s.rollup != nil {
			log.Printf("[API] prices refresh failed, serving stale rollup: %v", err)
			meta := s.rollupMeta
			return s.rollup, &meta, nil
		}
		return nil, nil, err
	}

	set := engine.NewRollupSet()
	set.AddPage(1, first.Result)

	totalPages := first.Pagination.TotalPages
	var wg sync.WaitGroup
	for p := 2; p <= totalPages; p++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			pg, err := s.client.FetchPricesPageCached(page)
			if err != nil {
				// One failed page leaves a gap in the accumulation
				// rather than aborting the whole session.
				log.Printf("[API] prices page %d failed: %v", page, err)
				return
			}
			set.AddPage(page, pg.Result)
		}(p)
	}
	wg.Wait()

	s.rollup = set
	s.rollupMeta = first.Meta
	s.rollupTime = time.Now()
	logger.Info("API", fmt.Sprintf("Price rollup rebuilt: %d pages, %d items", set.Pages(), len(set.Rows())))

	// Record one observation per item for the trend sparklines. Done
	// once per rebuild so a busy dashboard doesn't flood the series.
	if s.db != nil {
		now := time.Now()
		for _, row := range set.Rows() {
			s.db.RecordPrice(row.ID, row.AvgPrice, now)
		}
	}

	return s.rollup, &first.Meta, nil
}
