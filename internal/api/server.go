package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"craftboard/internal/config"
	"craftboard/internal/db"
	"craftboard/internal/engine"
	"craftboard/internal/statsapi"
)

// Server is the HTTP API server that connects the stats client, the
// estimation/aggregation engine, and the local database.
type Server struct {
	client *statsapi.Client
	db     *db.DB // nil-tolerant: history and settings are best-effort

	// Handlers run on parallel goroutines, so the config pointer is
	// guarded and swapped whole on update, never mutated in place.
	cfgMu sync.RWMutex
	cfg   *config.Config

	// Accumulated price rows for the current listing session, rebuilt
	// when the upstream prices cache window rolls over.
	rollupMu   sync.Mutex
	rollup     *engine.RollupSet
	rollupMeta statsapi.PricesMeta
	rollupTime time.Time
}

// NewServer creates a Server with the given config, stats client, and database.
func NewServer(cfg *config.Config, client *statsapi.Client, database *db.DB) *Server {
	return &Server{
		cfg:    cfg,
		client: client,
		db:     database,
	}
}

// config returns the current config. Readers get a stable pointer;
// updates install a fresh Config rather than writing through it.
func (s *Server) config() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *Server) setConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/theme", s.handleGetTheme)
	mux.HandleFunc("POST /api/theme", s.handleSetTheme)
	mux.HandleFunc("GET /api/player/{name}", s.handlePlayerStats)
	mux.HandleFunc("GET /api/player/{name}/status", s.handlePlayerStatus)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/leaderboard/totals", s.handleLeaderboardTotals)
	mux.HandleFunc("GET /api/auction", s.handleAuction)
	mux.HandleFunc("GET /api/auction/size", s.handleAuctionSize)
	mux.HandleFunc("GET /api/transactions", s.handleTransactions)
	mux.HandleFunc("GET /api/prices", s.handlePrices)
	mux.HandleFunc("GET /api/prices/{id}/trend", s.handlePriceTrend)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeUpstreamError maps the statsapi error taxonomy onto HTTP
// responses. Failures always render an explicit error body; a
// successful-but-empty result never comes through here.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, statsapi.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "upstream rate limit reached, try again shortly")
	case errors.Is(err, statsapi.ErrUnauthorized):
		// The key is a server-side secret; the user can't fix this.
		writeError(w, http.StatusBadGateway, "upstream rejected credentials, contact support")
	case errors.Is(err, statsapi.ErrMalformed):
		writeError(w, http.StatusBadGateway, "upstream returned an unreadable response")
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"ok":       true,
		"upstream": s.client.HealthCheck(),
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.config())
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config body")
		return
	}
	s.setConfig(&cfg)
	if s.db != nil {
		if err := s.db.SaveConfig(&cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "config not persisted")
			return
		}
	}
	writeJSON(w, &cfg)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme := "dark"
	if s.db != nil {
		theme = s.db.Theme()
	}
	writeJSON(w, map[string]string{"theme": theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		writeError(w, http.StatusBadRequest, "invalid theme body")
		return
	}
	if s.db != nil {
		s.db.SetTheme(req.Theme)
	}
	writeJSON(w, map[string]string{"theme": req.Theme})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing player name")
		return
	}
	stats, err := s.client.FetchPlayerStats(name)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handlePlayerStatus(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing player name")
		return
	}
	status, err := s.client.FetchPlayerStatus(name)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, status)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	if category == "" {
		writeError(w, http.StatusBadRequest, "missing leaderboard type")
		return
	}
	page := queryInt(r, "page", 1)

	rows, err := s.client.FetchLeaderboardPage(category, page)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	ranked := engine.RankLeaderboardPage(page, rows)
	writeJSON(w, map[string]interface{}{
		"category": category,
		"page":     page,
		// Empty but successful pages render as "no data", not an error.
		"entries": ranked,
		"empty":   len(ranked) == 0,
	})
}

func (s *Server) handleLeaderboardTotals(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	fetch := func(category string) ([]statsapi.LeaderboardRow, error) {
		return s.client.FetchLeaderboardPage(category, 1)
	}
	totals := engine.LeaderboardTotals(fetch, cfg.TotalCategories, cfg.TotalsMultiplier)

	var grand float64
	for _, t := range totals {
		grand += t.Projected
	}
	writeJSON(w, map[string]interface{}{
		"categories": totals,
		"projected_grand_total": grand,
		// Flagged so the UI can label these as rough projections.
		"approximate": true,
	})
}

func (s *Server) handleAuction(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	listings, err := s.client.FetchAuctionPage(page, r.URL.Query().Get("search"), r.URL.Query().Get("sort"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"page":     page,
		"listings": listings,
		"empty":    len(listings) == 0,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	txns, err := s.client.FetchTransactionsPage(page)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"page":         page,
		"transactions": txns,
		"empty":        len(txns) == 0,
	})
}

// queryInt reads an integer query parameter with a default and a floor of 1.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
