package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"craftboard/internal/engine"
	"craftboard/internal/logger"
)

// handleAuctionSize probes the auction listing for its approximate size.
// The estimate is recomputed fresh on every request: the collection can
// change size between visits, so nothing here is cached.
func (s *Server) handleAuctionSize(w http.ResponseWriter, r *http.Request) {
	probe := func(page int) (int, error) {
		listings, err := s.client.FetchAuctionPage(page, "", "")
		if err != nil {
			return 0, err
		}
		return len(listings), nil
	}

	start := time.Now()
	est := engine.EstimateSize(probe, engine.ItemsPerPage, s.config().MaxProbePage)
	logger.Info("SIZE", fmt.Sprintf("Estimated %d listings (last page %d) in %s",
		est.TotalEstimate, est.LastValidPage, time.Since(start).Round(time.Millisecond)))

	writeJSON(w, map[string]interface{}{
		"last_valid_page":      est.LastValidPage,
		"last_page_item_count": est.LastPageItemCount,
		"total_estimate":       est.TotalEstimate,
		// Abbreviated form for display; the raw figure is approximate
		// anyway, so "12.3k" is as honest as "12287".
		"total_abbrev": humanize.SIWithDigits(float64(est.TotalEstimate), 1, ""),
		"approximate":  true,
	})
}
