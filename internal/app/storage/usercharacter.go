package storage

import (
	"context"
	"fmt"

	"github.com/hraharahra/pathfinder/internal/app"
)

func (st *Storage) CreateUserCharacter(ctx context.Context, characterID int32, userID int64) (*app.UserCharacter, error) {
	wrapErr := func(err error) error {
		return fmt.Errorf("create user link for character %d: %w", characterID, err)
	}
	if characterID == 0 || userID == 0 {
		return nil, wrapErr(app.ErrInvalid)
	}
	r, err := st.db.ExecContext(
		ctx,
		"INSERT INTO user_characters (character_id, user_id) VALUES (?, ?)",
		characterID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = app.ErrAlreadyExists
		}
		return nil, wrapErr(err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return nil, wrapErr(err)
	}
	return &app.UserCharacter{ID: id, CharacterID: characterID, UserID: userID}, nil
}

func (st *Storage) GetUserCharacter(ctx context.Context, characterID int32) (*app.UserCharacter, error) {
	var o app.UserCharacter
	err := st.db.
		QueryRowContext(ctx, "SELECT id, character_id, user_id FROM user_characters WHERE character_id = ?", characterID).
		Scan(&o.ID, &o.CharacterID, &o.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user link for character %d: %w", characterID, convertGetError(err))
	}
	return &o, nil
}

func (st *Storage) DeleteUserCharacter(ctx context.Context, characterID int32) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM user_characters WHERE character_id = ?", characterID)
	if err != nil {
		return fmt.Errorf("delete user link for character %d: %w", characterID, err)
	}
	return nil
}
