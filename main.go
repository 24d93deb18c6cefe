package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"craftboard/internal/api"
	"craftboard/internal/db"
	"craftboard/internal/logger"
	"craftboard/internal/statsapi"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13380, "HTTP server port")
	dbPath := flag.String("db", db.DefaultPath(), "SQLite database path")
	flag.Parse()

	// Secrets come from the environment; .env is a developer convenience.
	godotenv.Load()

	logger.Banner(version)

	database, err := db.Open(*dbPath)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	cfg := database.LoadConfig()
	if v := os.Getenv("STATS_API_URL"); v != "" {
		cfg.UpstreamURL = v
	}
	apiKey := os.Getenv("STATS_API_KEY")
	if apiKey == "" {
		logger.Warn("API", "STATS_API_KEY not set, upstream requests will be rejected")
	}

	client := statsapi.NewClient(cfg.UpstreamURL, apiKey, cfg.MaxConcurrent)
	client.SetRequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	client.SetPricesCacheTTL(time.Duration(cfg.PricesCacheTTLMinutes) * time.Minute)

	if client.HealthCheck() {
		logger.Success("API", "Upstream reachable")
	} else {
		logger.Warn("API", "Upstream unreachable, dashboard will show errors until it recovers")
	}

	srv := api.NewServer(cfg, client, database)

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
