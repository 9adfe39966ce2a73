package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
)

type CreateCharacterAuthenticationParams struct {
	CharacterID int32
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Selector    string
	Token       string
}

func (st *Storage) CreateCharacterAuthentication(ctx context.Context, arg CreateCharacterAuthenticationParams) (*app.CharacterAuthentication, error) {
	wrapErr := func(err error) error {
		return fmt.Errorf("create authentication for character %d: %w", arg.CharacterID, err)
	}
	if arg.CharacterID == 0 || arg.Selector == "" {
		return nil, wrapErr(app.ErrInvalid)
	}
	r, err := st.db.ExecContext(
		ctx,
		`INSERT INTO character_authentications (character_id, selector, token, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		arg.CharacterID, arg.Selector, arg.Token, arg.CreatedAt, arg.ExpiresAt,
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
	o := &app.CharacterAuthentication{
		CharacterID: arg.CharacterID,
		CreatedAt:   arg.CreatedAt,
		ExpiresAt:   arg.ExpiresAt,
		ID:          id,
		Selector:    arg.Selector,
		Token:       arg.Token,
	}
	return o, nil
}

func (st *Storage) GetCharacterAuthenticationBySelector(ctx context.Context, selector string) (*app.CharacterAuthentication, error) {
	var o app.CharacterAuthentication
	err := st.db.
		QueryRowContext(
			ctx,
			`SELECT id, character_id, selector, token, created_at, expires_at
			FROM character_authentications WHERE selector = ?`,
			selector,
		).
		Scan(&o.ID, &o.CharacterID, &o.Selector, &o.Token, &o.CreatedAt, &o.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("get authentication %s: %w", selector, convertGetError(err))
	}
	return &o, nil
}

func (st *Storage) ListCharacterAuthentications(ctx context.Context, characterID int32) ([]*app.CharacterAuthentication, error) {
	rows, err := st.db.QueryContext(
		ctx,
		`SELECT id, character_id, selector, token, created_at, expires_at
		FROM character_authentications WHERE character_id = ? ORDER BY created_at`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list authentications for character %d: %w", characterID, err)
	}
	defer rows.Close()
	oo := make([]*app.CharacterAuthentication, 0)
	for rows.Next() {
		var o app.CharacterAuthentication
		if err := rows.Scan(&o.ID, &o.CharacterID, &o.Selector, &o.Token, &o.CreatedAt, &o.ExpiresAt); err != nil {
			return nil, fmt.Errorf("list authentications for character %d: %w", characterID, err)
		}
		oo = append(oo, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list authentications for character %d: %w", characterID, err)
	}
	return oo, nil
}

// DeleteCharacterAuthentications removes all authentications of a character.
func (st *Storage) DeleteCharacterAuthentications(ctx context.Context, characterID int32) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM character_authentications WHERE character_id = ?", characterID)
	if err != nil {
		return fmt.Errorf("delete authentications for character %d: %w", characterID, err)
	}
	return nil
}
