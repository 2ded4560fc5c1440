// Package main runs the fitcoach MCP server over stdio (for local Cursor use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the backend URL (no extra deploy).
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"

	"github.com/2beens/fitcoach/internal/checkins"
	checkinsmcp "github.com/2beens/fitcoach/internal/checkins/mcp"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/prefs"
	"github.com/2beens/fitcoach/internal/progress"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/users"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("FITCOACH_REDIS_PASS"),
		DB:       0,
	})

	// no model client over stdio, summary generation stays on the main backend
	checkinsService := checkins.NewService(
		checkins.NewRepo(dbPool),
		progress.NewRepo(dbPool),
		users.NewRepo(dbPool),
		prefs.NewRedisStore(rdb),
		nil,
		nil,
		cfg.RecapCacheSizeMb,
		metrics.NewManager("fitcoach", "mcp", prometheus.NewRegistry()),
	)

	server := checkinsmcp.NewServer(dbPool, checkinsService)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
