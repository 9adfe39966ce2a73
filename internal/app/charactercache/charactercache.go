// Package charactercache is a service which provides cached access
// to the derived data of characters.
//
// Cached entries have no expiry. They are destroyed explicitly whenever a
// contributing entity changes, so every mutation path must invalidate.
package charactercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/storage"
)

const (
	variantData = "DATA"
	variantLog  = "LOG"
)

// CharacterCache provides cached access to derived character data.
type CharacterCache struct {
	cache app.CacheService
	st    *storage.Storage
}

// New creates and returns a new instance of a character cache.
func New(cache app.CacheService, st *storage.Storage) *CharacterCache {
	return &CharacterCache{cache: cache, st: st}
}

type cacheKey struct {
	id      int32
	variant string
}

func (ck cacheKey) String() string {
	return fmt.Sprintf("character-%d-%s", ck.id, ck.variant)
}

func keyPrefix(characterID int32) string {
	return fmt.Sprintf("character-%d-", characterID)
}

// CharacterData returns the derived data of a character.
//
// On a cache miss the data is assembled from storage and cached
// without expiry. The two variants are cached under separate keys.
func (cc *CharacterCache) CharacterData(ctx context.Context, characterID int32, withLog bool) (app.CharacterData, error) {
	variant := variantData
	if withLog {
		variant = variantLog
	}
	key := cacheKey{id: characterID, variant: variant}.String()
	if data, ok := cc.lookup(ctx, key); ok {
		return data, nil
	}
	data, err := cc.assemble(ctx, characterID, withLog)
	if err != nil {
		return app.CharacterData{}, err
	}
	b, err := json.Marshal(data)
	if err != nil {
		return app.CharacterData{}, fmt.Errorf("marshal character data %d: %w", characterID, err)
	}
	if err := cc.cache.Set(ctx, key, b, 0); err != nil {
		slog.Warn("Failed to cache character data", "characterID", characterID, "error", err)
	}
	return data, nil
}

// Invalidate destroys both cached variants of a character.
//
// It must be called after the triggering mutation has been committed,
// so a concurrent rebuild can not repopulate pre-commit state.
func (cc *CharacterCache) Invalidate(ctx context.Context, characterID int32) error {
	if err := cc.cache.DeleteByPrefix(ctx, keyPrefix(characterID)); err != nil {
		return fmt.Errorf("invalidate character data %d: %w", characterID, err)
	}
	return nil
}

func (cc *CharacterCache) lookup(ctx context.Context, key string) (app.CharacterData, bool) {
	b, ok, err := cc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read cached character data", "key", key, "error", err)
		return app.CharacterData{}, false
	}
	if !ok {
		return app.CharacterData{}, false
	}
	var data app.CharacterData
	if err := json.Unmarshal(b, &data); err != nil {
		slog.Warn("Discarding broken cached character data", "key", key, "error", err)
		cc.cache.Delete(ctx, key)
		return app.CharacterData{}, false
	}
	return data, true
}

func (cc *CharacterCache) assemble(ctx context.Context, characterID int32, withLog bool) (app.CharacterData, error) {
	c, err := cc.st.GetCharacter(ctx, characterID)
	if err != nil {
		return app.CharacterData{}, err
	}
	data := app.CharacterData{
		ID:          c.ID,
		Name:        c.Name,
		Shared:      c.Shared,
		LogLocation: c.LogLocation,
	}
	if withLog {
		l, err := cc.st.GetCharacterLocation(ctx, characterID)
		if err != nil && !errors.Is(err, app.ErrNotFound) {
			return app.CharacterData{}, err
		}
		if l != nil {
			data.Log = &app.LocationData{
				ShipTypeID:      l.ShipTypeID.ValueOrZero(),
				SolarSystemID:   l.SolarSystemID,
				SolarSystemName: l.SolarSystemName,
				StationID:       l.StationID.ValueOrZero(),
				StructureID:     l.StructureID.ValueOrZero(),
				UpdatedAt:       l.UpdatedAt,
			}
		}
	}
	if c.HasCorporation() {
		data.Corporation = &app.CorporationData{
			ID:     c.Corporation.ID,
			Name:   c.Corporation.Name,
			Ticker: c.Corporation.Ticker,
			IsNPC:  c.Corporation.IsNPC,
		}
	}
	if c.HasAlliance() {
		data.Alliance = &app.AllianceData{
			ID:     c.Alliance.ID,
			Name:   c.Alliance.Name,
			Ticker: c.Alliance.Ticker,
		}
	}
	return data, nil
}
