package characterservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/storage"
	"github.com/hraharahra/pathfinder/internal/optional"
)

// SyncLocation updates the location log of a character from the identity
// provider and reports the outcome.
//
// Characters that opted out of location logging are skipped. A missing
// token, a provider failure or a timed out query yield
// app.SyncResultTransientFailure without touching the log, the next
// poll cycle retries. A completed query with no current location destroys
// an existing log. Overlapping calls for the same character are coalesced.
func (s *CharacterService) SyncLocation(ctx context.Context, characterID int32) (app.SyncResult, error) {
	x, err, _ := s.sfg.Do(fmt.Sprintf("SyncLocation-%d", characterID), func() (any, error) {
		return s.syncLocation(ctx, characterID)
	})
	if err != nil {
		return app.SyncResultUndefined, err
	}
	return x.(app.SyncResult), nil
}

func (s *CharacterService) syncLocation(ctx context.Context, characterID int32) (app.SyncResult, error) {
	c, err := s.st.GetCharacter(ctx, characterID)
	if err != nil {
		return app.SyncResultUndefined, err
	}
	if !c.LogLocation {
		return app.SyncResultSkipped, nil
	}
	t, err := s.ValidAccessToken(ctx, characterID)
	if errors.Is(err, app.ErrTokenUnavailable) {
		return app.SyncResultTransientFailure, nil
	} else if err != nil {
		return app.SyncResultUndefined, err
	}
	ctx2, cancel := context.WithTimeout(ctx, s.cfg.LocationTimeout)
	defer cancel()
	r, err := s.ic.FetchLocation(ctx2, t.AccessToken, characterID)
	if errors.Is(err, context.Canceled) {
		return app.SyncResultUndefined, err
	} else if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("Location query timed out", "characterID", characterID)
		return app.SyncResultTransientFailure, nil
	} else if err != nil {
		slog.Warn("Failed to fetch location", "characterID", characterID, "error", err)
		return app.SyncResultTransientFailure, nil
	}
	if r.TimedOut {
		return app.SyncResultTransientFailure, nil
	}
	if r.Location == nil {
		return s.clearLocation(ctx, characterID)
	}
	arg := storage.UpdateOrCreateCharacterLocationParams{
		CharacterID:     characterID,
		ShipTypeID:      optional.FromIntegerWithZero(r.Location.ShipTypeID),
		SolarSystemID:   r.Location.SolarSystemID,
		SolarSystemName: r.Location.SolarSystemName,
		StationID:       optional.FromIntegerWithZero(r.Location.StationID),
		StructureID:     optional.FromIntegerWithZero(r.Location.StructureID),
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.st.UpdateOrCreateCharacterLocation(ctx, arg); err != nil {
		return app.SyncResultUndefined, err
	}
	if err := s.cc.Invalidate(ctx, characterID); err != nil {
		return app.SyncResultUndefined, err
	}
	return app.SyncResultUpdated, nil
}

// clearLocation destroys an existing location log after the provider
// reported the character as not being in game.
func (s *CharacterService) clearLocation(ctx context.Context, characterID int32) (app.SyncResult, error) {
	_, err := s.st.GetCharacterLocation(ctx, characterID)
	if errors.Is(err, app.ErrNotFound) {
		return app.SyncResultUnchanged, nil
	} else if err != nil {
		return app.SyncResultUndefined, err
	}
	if err := s.st.DeleteCharacterLocation(ctx, characterID); err != nil {
		return app.SyncResultUndefined, err
	}
	if err := s.cc.Invalidate(ctx, characterID); err != nil {
		return app.SyncResultUndefined, err
	}
	return app.SyncResultUpdated, nil
}

// SetLogLocation enables or disables location logging for a character.
//
// Disabling destroys an existing location log before the flag is committed.
// When the destruction fails the flag keeps its old value, so a stale log
// can never survive a disabled flag.
func (s *CharacterService) SetLogLocation(ctx context.Context, characterID int32, enabled bool) error {
	if !enabled {
		if err := s.st.DeleteCharacterLocation(ctx, characterID); err != nil {
			return err
		}
	}
	if err := s.st.UpdateCharacterLogLocation(ctx, characterID, enabled); err != nil {
		return err
	}
	return s.cc.Invalidate(ctx, characterID)
}
