package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
)

func (st *Storage) GetCharacterToken(ctx context.Context, characterID int32) (*app.CharacterToken, error) {
	var t app.CharacterToken
	err := st.db.
		QueryRowContext(
			ctx,
			`SELECT character_id, access_token, refresh_token, issued_at
			FROM character_tokens WHERE character_id = ?`,
			characterID,
		).
		Scan(&t.CharacterID, &t.AccessToken, &t.RefreshToken, &t.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("get token for character %d: %w", characterID, convertGetError(err))
	}
	return &t, nil
}

type UpdateOrCreateCharacterTokenParams struct {
	AccessToken  string
	CharacterID  int32
	IssuedAt     time.Time
	RefreshToken string
}

// UpdateOrCreateCharacterToken stores a token pair.
// Access and refresh token are always written together.
func (st *Storage) UpdateOrCreateCharacterToken(ctx context.Context, arg UpdateOrCreateCharacterTokenParams) error {
	if arg.CharacterID == 0 {
		return fmt.Errorf("UpdateOrCreateCharacterToken: %+v: %w", arg, app.ErrInvalid)
	}
	_, err := st.db.ExecContext(
		ctx,
		`INSERT INTO character_tokens (character_id, access_token, refresh_token, issued_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (character_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			issued_at = excluded.issued_at`,
		arg.CharacterID, arg.AccessToken, arg.RefreshToken, arg.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("update or create token for character %d: %w", arg.CharacterID, err)
	}
	return nil
}

func (st *Storage) DeleteCharacterToken(ctx context.Context, characterID int32) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM character_tokens WHERE character_id = ?", characterID)
	if err != nil {
		return fmt.Errorf("delete token for character %d: %w", characterID, err)
	}
	return nil
}
