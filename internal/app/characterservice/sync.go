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

// SyncFromProvider refreshes name, owner hash and affiliations of a
// character from the identity provider.
//
// The returned strings are informational status messages for conditions
// which are regular outcomes rather than faults, like a character without
// a usable token. An empty list means the character was synced.
//
// The access token is verified against the local character id before
// anything is mutated. A mismatch aborts the sync, accepting it would let
// a foreign token overwrite this character's identity.
func (s *CharacterService) SyncFromProvider(ctx context.Context, characterID int32) ([]string, error) {
	c, err := s.st.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	ss := make([]string, 0)
	t, err := s.ValidAccessToken(ctx, characterID)
	if errors.Is(err, app.ErrTokenUnavailable) {
		ss = append(ss, fmt.Sprintf("access token unavailable for %s", c.Name))
		return ss, nil
	} else if err != nil {
		return nil, err
	}
	v, err := s.ic.VerifyIdentity(ctx, t.AccessToken)
	if err != nil {
		return nil, err
	}
	if v == nil || v.CharacterID != characterID {
		slog.Warn(
			"Aborting character sync",
			"characterID", characterID,
			"error", app.ErrVerificationMismatch,
		)
		ss = append(ss, fmt.Sprintf("verification failed for %s", c.Name))
		return ss, nil
	}
	p, err := s.ic.FetchProfile(ctx, t.AccessToken, characterID)
	if err != nil {
		return nil, err
	}
	err = s.st.UpdateCharacterProfile(ctx, storage.UpdateCharacterProfileParams{
		Alliance:    p.Alliance,
		Corporation: p.Corporation,
		ID:          characterID,
		Name:        p.Name,
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetOwnerHash(ctx, characterID, v.OwnerHash); err != nil {
		return nil, err
	}
	if err := s.st.UpdateCharacterLastLogin(ctx, characterID, optional.New(time.Now().UTC())); err != nil {
		return nil, err
	}
	if err := s.cc.Invalidate(ctx, characterID); err != nil {
		return nil, err
	}
	slog.Info("Synced character from provider", "characterID", characterID)
	return ss, nil
}
