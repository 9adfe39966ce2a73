package characterservice

import (
	"context"
	"log/slog"
)

// SetOwnerHash updates the owner hash of a character.
//
// A new hash on a character with a non-empty prior hash means the character
// changed real-world hands. The user link and all cookie authentications are
// then destroyed in the same transaction which persists the new hash, so no
// reader can observe the new hash with the old logins still valid.
// The cascade is one-way, reverting the hash later does not restore logins.
//
// Calling it again with the current hash is a no-op.
func (s *CharacterService) SetOwnerHash(ctx context.Context, characterID int32, newHash string) error {
	c, err := s.st.GetCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	if c.OwnerHash == newHash {
		return nil
	}
	if c.OwnerHash == "" {
		if err := s.st.UpdateCharacterOwnerHash(ctx, characterID, newHash); err != nil {
			return err
		}
	} else {
		if err := s.st.ReplaceCharacterOwnerHash(ctx, characterID, newHash); err != nil {
			return err
		}
		slog.Info("Character changed hands, removed all logins", "characterID", characterID)
	}
	return s.cc.Invalidate(ctx, characterID)
}
