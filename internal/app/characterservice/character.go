package characterservice

import (
	"context"
	"log/slog"
)

// DeleteCharacter erases a registered character.
//
// Tokens, logins, the user link and the location log are removed through
// the storage cascade. Cached views are destroyed after the erase has been
// committed.
func (s *CharacterService) DeleteCharacter(ctx context.Context, characterID int32) error {
	if err := s.st.DeleteCharacter(ctx, characterID); err != nil {
		return err
	}
	slog.Info("Character deleted", "characterID", characterID)
	return s.cc.Invalidate(ctx, characterID)
}

// Logout destroys all cookie based logins of a character.
// The user link and tokens stay intact, the character can log in again.
func (s *CharacterService) Logout(ctx context.Context, characterID int32) error {
	if err := s.st.DeleteCharacterAuthentications(ctx, characterID); err != nil {
		return err
	}
	slog.Info("Character logged out", "characterID", characterID)
	return nil
}
