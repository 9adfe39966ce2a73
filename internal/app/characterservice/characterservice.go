// Package characterservice manages the identity and credential lifecycle of
// registered characters: access token refresh, ownership change cascades,
// location log synchronization, registration policy and map access.
//
// Token refreshes and location syncs for the same character are coalesced
// with single-flight groups. The reference behavior leaves concurrent
// invocations unspecified, the coalescing here is a deliberate strengthening.
package characterservice

import (
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/charactercache"
	"github.com/hraharahra/pathfinder/internal/app/storage"
)

const (
	tokenLifetimeDefault   = 1200 * time.Second
	tokenBufferDefault     = 120 * time.Second
	locationTimeoutDefault = 10 * time.Second
	maxPrivateMapsDefault  = 3
)

// Config holds the runtime configuration of a character service.
// The zero value is usable and falls back to defaults.
type Config struct {
	// LocationTimeout bounds a single location query to the provider.
	LocationTimeout time.Duration
	// MaxPrivateMaps caps how many of a character's own maps are surfaced.
	MaxPrivateMaps int
	// TokenBuffer marks access tokens as expired this long before
	// the provider would reject them.
	TokenBuffer time.Duration
	// TokenLifetime is the provider reported access token lifetime.
	TokenLifetime time.Duration
	// WhitelistAllianceIDs and WhitelistCorporationIDs restrict registration.
	// When both are empty registration is open.
	WhitelistAllianceIDs    []int32
	WhitelistCorporationIDs []int32
}

// CharacterService provides access to all registered characters
// and their derived state.
type CharacterService struct {
	cc  *charactercache.CharacterCache
	cfg Config
	ic  app.IdentityClient
	sfg *singleflight.Group
	st  *storage.Storage
}

// New creates and returns a new character service.
func New(st *storage.Storage, cc *charactercache.CharacterCache, ic app.IdentityClient, cfg Config) *CharacterService {
	if cfg.TokenLifetime == 0 {
		cfg.TokenLifetime = tokenLifetimeDefault
	}
	if cfg.TokenBuffer == 0 {
		cfg.TokenBuffer = tokenBufferDefault
	}
	if cfg.LocationTimeout == 0 {
		cfg.LocationTimeout = locationTimeoutDefault
	}
	if cfg.MaxPrivateMaps == 0 {
		cfg.MaxPrivateMaps = maxPrivateMapsDefault
	}
	return &CharacterService{
		cc:  cc,
		cfg: cfg,
		ic:  ic,
		sfg: new(singleflight.Group),
		st:  st,
	}
}
