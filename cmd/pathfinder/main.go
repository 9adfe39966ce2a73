// Pathfinder is a daemon which keeps registered Eve Online characters in
// sync with the game: it refreshes their tokens, tracks their locations
// and updates their affiliations.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/charactercache"
	"github.com/hraharahra/pathfinder/internal/app/characterservice"
	"github.com/hraharahra/pathfinder/internal/app/storage"
	"github.com/hraharahra/pathfinder/internal/cacheadapter"
	"github.com/hraharahra/pathfinder/internal/eveonline"
	"github.com/hraharahra/pathfinder/internal/memcache"
	"github.com/hraharahra/pathfinder/internal/rediscache"
)

const userAgent = "Pathfinder (sync daemon)"

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *logFileFlag && cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	db, err := storage.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database %s: %s", cfg.DatabasePath, err)
	}
	defer db.Close()
	st := storage.New(db)
	var cache app.CacheService
	if cfg.RedisAddr != "" {
		cache = rediscache.New(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		slog.Info("Using redis cache", "addr", cfg.RedisAddr)
	} else {
		mc := memcache.New()
		defer mc.Close()
		cache = mc
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	// cache provider responses between poll cycles
	rc.HTTPClient.Transport = httpcache.NewTransport(cacheadapter.New(cache, "httpcache-", 24*time.Hour))
	ic := eveonline.New(cfg.SSOClientID, userAgent, rc.StandardClient())
	cc := charactercache.New(cache, st)
	cs := characterservice.New(st, cc, ic, characterservice.Config{
		LocationTimeout:         cfg.LocationTimeout,
		MaxPrivateMaps:          cfg.MaxPrivateMaps,
		WhitelistAllianceIDs:    cfg.WhitelistAllianceIDs,
		WhitelistCorporationIDs: cfg.WhitelistCorporationIDs,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *oneShotFlag {
		if err := syncCycle(ctx, st, cs, cfg, true); err != nil {
			log.Fatal(err)
		}
		return
	}
	runLoop(ctx, st, cs, cfg)
}

// runLoop polls all registered characters until the context is canceled.
// Locations are synced every cycle, profiles on a slower schedule.
func runLoop(ctx context.Context, st *storage.Storage, cs *characterservice.CharacterService, cfg *config) {
	slog.Info("Started sync loop", "locationInterval", cfg.LocationInterval, "profileInterval", cfg.ProfileInterval)
	ticker := time.NewTicker(cfg.LocationInterval)
	defer ticker.Stop()
	lastProfileSync := time.Time{}
	for {
		withProfiles := time.Since(lastProfileSync) >= cfg.ProfileInterval
		if err := syncCycle(ctx, st, cs, cfg, withProfiles); err != nil {
			slog.Error("Sync cycle failed", "error", err)
		} else if withProfiles {
			lastProfileSync = time.Now()
		}
		select {
		case <-ctx.Done():
			slog.Info("Stopped sync loop")
			return
		case <-ticker.C:
		}
	}
}

func syncCycle(ctx context.Context, st *storage.Storage, cs *characterservice.CharacterService, cfg *config, withProfiles bool) error {
	characters, err := st.ListCharactersShort(ctx)
	if err != nil {
		return err
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.SyncRate), 1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.SyncWorkers)
	for _, c := range characters {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			r, err := cs.SyncLocation(ctx, c.ID)
			if err != nil {
				slog.Error("Failed to sync location", "character", c.Name, "error", err)
			} else {
				slog.Debug("Synced location", "character", c.Name, "result", r)
			}
			if !withProfiles {
				return nil
			}
			ss, err := cs.SyncFromProvider(ctx, c.ID)
			if err != nil {
				slog.Error("Failed to sync character", "character", c.Name, "error", err)
				return nil
			}
			for _, s := range ss {
				slog.Info("Character sync status", "characterID", c.ID, "status", s)
			}
			return nil
		})
	}
	return g.Wait()
}
