package characterservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/storage"
)

// ValidAccessToken returns a valid access token for a character.
//
// An expired or nearly expired token is refreshed through the identity
// provider and the new token pair is persisted before it is returned.
// It returns app.ErrTokenUnavailable when the character has no token,
// no refresh token or the refresh call failed. Callers must treat that
// as a regular outcome, not a fault.
//
// Concurrent calls for the same character share one refresh, so a second
// caller can not invalidate the refresh token the first one just used.
func (s *CharacterService) ValidAccessToken(ctx context.Context, characterID int32) (*app.CharacterToken, error) {
	x, err, _ := s.sfg.Do(fmt.Sprintf("ValidAccessToken-%d", characterID), func() (any, error) {
		return s.validAccessToken(ctx, characterID)
	})
	if err != nil {
		return nil, err
	}
	return x.(*app.CharacterToken), nil
}

func (s *CharacterService) validAccessToken(ctx context.Context, characterID int32) (*app.CharacterToken, error) {
	t, err := s.st.GetCharacterToken(ctx, characterID)
	if errors.Is(err, app.ErrNotFound) {
		return nil, app.ErrTokenUnavailable
	} else if err != nil {
		return nil, err
	}
	if t.RemainsValid(s.cfg.TokenLifetime, s.cfg.TokenBuffer) {
		return t, nil
	}
	if t.RefreshToken == "" {
		return nil, app.ErrTokenUnavailable
	}
	fresh, err := s.ic.RefreshToken(ctx, t.RefreshToken)
	if err != nil {
		slog.Warn("Failed to refresh access token", "characterID", characterID, "error", err)
		return nil, app.ErrTokenUnavailable
	}
	t.AccessToken = fresh.AccessToken
	t.RefreshToken = fresh.RefreshToken
	t.IssuedAt = time.Now().UTC()
	err = s.st.UpdateOrCreateCharacterToken(ctx, storage.UpdateOrCreateCharacterTokenParams{
		AccessToken:  t.AccessToken,
		CharacterID:  t.CharacterID,
		IssuedAt:     t.IssuedAt,
		RefreshToken: t.RefreshToken,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Refreshed access token", "characterID", characterID)
	return t, nil
}
