package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// config is the runtime configuration of the daemon,
// loaded from environment variables.
type config struct {
	DatabasePath     string        `env:"PATHFINDER_DB, default=pathfinder.sqlite"`
	LocationInterval time.Duration `env:"PATHFINDER_LOCATION_INTERVAL, default=30s"`
	LocationTimeout  time.Duration `env:"PATHFINDER_LOCATION_TIMEOUT, default=10s"`
	LogFile          string        `env:"PATHFINDER_LOG_FILE"`
	MaxPrivateMaps   int           `env:"PATHFINDER_MAX_PRIVATE_MAPS, default=3"`
	ProfileInterval  time.Duration `env:"PATHFINDER_PROFILE_INTERVAL, default=1h"`
	RedisAddr        string        `env:"PATHFINDER_REDIS_ADDR"`
	SSOClientID      string        `env:"PATHFINDER_SSO_CLIENT_ID"`
	SyncRate         float64       `env:"PATHFINDER_SYNC_RATE, default=10"`
	SyncWorkers      int           `env:"PATHFINDER_SYNC_WORKERS, default=5"`

	WhitelistAllianceIDs    []int32 `env:"PATHFINDER_WHITELIST_ALLIANCES"`
	WhitelistCorporationIDs []int32 `env:"PATHFINDER_WHITELIST_CORPORATIONS"`
}

func loadConfig() (*config, error) {
	var cfg config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
