package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/optional"
)

type CreateCharacterParams struct {
	AllianceID    optional.Optional[int32]
	CorporationID optional.Optional[int32]
	FactionID     optional.Optional[int32]
	FactionName   string
	ID            int32
	LastLoginAt   optional.Optional[time.Time]
	LogLocation   bool
	Name          string
	OwnerHash     string
	Shared        bool
}

func (st *Storage) CreateCharacter(ctx context.Context, arg CreateCharacterParams) error {
	if arg.ID == 0 {
		return fmt.Errorf("CreateCharacter: %+v: %w", arg, app.ErrInvalid)
	}
	_, err := st.db.ExecContext(
		ctx,
		`INSERT INTO characters (
			id, name, owner_hash, active, shared, log_location,
			faction_id, faction_name, corporation_id, alliance_id, last_login_at
		)
		VALUES (?, ?, ?, TRUE, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID,
		arg.Name,
		arg.OwnerHash,
		arg.Shared,
		arg.LogLocation,
		optional.ToNullInt64(arg.FactionID),
		arg.FactionName,
		optional.ToNullInt64(arg.CorporationID),
		optional.ToNullInt64(arg.AllianceID),
		optional.ToNullTime(arg.LastLoginAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = app.ErrAlreadyExists
		}
		return fmt.Errorf("create Character %d: %w", arg.ID, err)
	}
	return nil
}

func (st *Storage) DeleteCharacter(ctx context.Context, characterID int32) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM characters WHERE id = ?", characterID)
	if err != nil {
		return fmt.Errorf("delete Character %d: %w", characterID, err)
	}
	return nil
}

const characterSelect = `
	SELECT
		c.id, c.name, c.owner_hash, c.active, c.shared, c.log_location,
		c.faction_id, c.faction_name, c.last_login_at,
		co.id, co.name, co.ticker, co.is_npc,
		al.id, al.name, al.ticker
	FROM characters c
	LEFT JOIN corporations co ON co.id = c.corporation_id
	LEFT JOIN alliances al ON al.id = c.alliance_id
`

func (st *Storage) GetCharacter(ctx context.Context, characterID int32) (*app.Character, error) {
	row := st.db.QueryRowContext(ctx, characterSelect+"WHERE c.id = ?", characterID)
	c, err := scanCharacter(row)
	if err != nil {
		return nil, fmt.Errorf("get Character %d: %w", characterID, convertGetError(err))
	}
	return c, nil
}

func (st *Storage) ListCharactersShort(ctx context.Context) ([]*app.CharacterShort, error) {
	rows, err := st.db.QueryContext(ctx, "SELECT id, name FROM characters ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list short characters: %w", err)
	}
	defer rows.Close()
	cc := make([]*app.CharacterShort, 0)
	for rows.Next() {
		var c app.CharacterShort
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("list short characters: %w", err)
		}
		cc = append(cc, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list short characters: %w", err)
	}
	return cc, nil
}

// ReplaceCharacterOwnerHash sets a new owner hash while removing the
// character's user link and all of its authentications in the same transaction.
//
// A reader can never observe the new hash next to the old logins.
func (st *Storage) ReplaceCharacterOwnerHash(ctx context.Context, characterID int32, ownerHash string) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("replace owner hash for character %d: %w", characterID, err)
	}
	tx, err := st.db.Begin()
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM user_characters WHERE character_id = ?", characterID); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM character_authentications WHERE character_id = ?", characterID); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE characters SET owner_hash = ? WHERE id = ?", ownerHash, characterID); err != nil {
		return wrapErr(err)
	}
	if err := tx.Commit(); err != nil {
		return wrapErr(err)
	}
	return nil
}

func (st *Storage) UpdateCharacterOwnerHash(ctx context.Context, characterID int32, ownerHash string) error {
	_, err := st.db.ExecContext(ctx, "UPDATE characters SET owner_hash = ? WHERE id = ?", ownerHash, characterID)
	if err != nil {
		return fmt.Errorf("update owner hash for character %d: %w", characterID, err)
	}
	return nil
}

func (st *Storage) UpdateCharacterLogLocation(ctx context.Context, characterID int32, enabled bool) error {
	_, err := st.db.ExecContext(ctx, "UPDATE characters SET log_location = ? WHERE id = ?", enabled, characterID)
	if err != nil {
		return fmt.Errorf("update log location for character %d: %w", characterID, err)
	}
	return nil
}

func (st *Storage) UpdateCharacterLastLogin(ctx context.Context, characterID int32, v optional.Optional[time.Time]) error {
	_, err := st.db.ExecContext(ctx, "UPDATE characters SET last_login_at = ? WHERE id = ?", optional.ToNullTime(v), characterID)
	if err != nil {
		return fmt.Errorf("update last login for character %d: %w", characterID, err)
	}
	return nil
}

type UpdateCharacterProfileParams struct {
	Alliance    *app.EveAlliance
	Corporation *app.EveCorporation
	ID          int32
	Name        string
}

// UpdateCharacterProfile stores a character's profile as fetched from the
// identity provider in one transaction: affiliation targets are upserted
// and the character's name and weak references are updated together, so a
// partial sync can not leave the profile inconsistent.
func (st *Storage) UpdateCharacterProfile(ctx context.Context, arg UpdateCharacterProfileParams) error {
	wrapErr := func(err error) error {
		return fmt.Errorf("update profile for character %d: %w", arg.ID, err)
	}
	if arg.ID == 0 {
		return wrapErr(app.ErrInvalid)
	}
	tx, err := st.db.Begin()
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback()
	var corporationID, allianceID sql.NullInt64
	if arg.Corporation != nil {
		if err := upsertCorporation(ctx, tx, arg.Corporation); err != nil {
			return wrapErr(err)
		}
		corporationID = sql.NullInt64{Int64: int64(arg.Corporation.ID), Valid: true}
	}
	if arg.Alliance != nil {
		if err := upsertAlliance(ctx, tx, arg.Alliance); err != nil {
			return wrapErr(err)
		}
		allianceID = sql.NullInt64{Int64: int64(arg.Alliance.ID), Valid: true}
	}
	_, err = tx.ExecContext(
		ctx,
		"UPDATE characters SET name = ?, corporation_id = ?, alliance_id = ? WHERE id = ?",
		arg.Name, corporationID, allianceID, arg.ID,
	)
	if err != nil {
		return wrapErr(err)
	}
	if err := tx.Commit(); err != nil {
		return wrapErr(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(r rowScanner) (*app.Character, error) {
	var (
		c                          app.Character
		factionID                  sql.NullInt64
		lastLoginAt                sql.NullTime
		corpID, allianceID         sql.NullInt64
		corpName, corpTicker       sql.NullString
		corpIsNPC                  sql.NullBool
		allianceName, allianceTick sql.NullString
	)
	err := r.Scan(
		&c.ID, &c.Name, &c.OwnerHash, &c.Active, &c.Shared, &c.LogLocation,
		&factionID, &c.FactionName, &lastLoginAt,
		&corpID, &corpName, &corpTicker, &corpIsNPC,
		&allianceID, &allianceName, &allianceTick,
	)
	if err != nil {
		return nil, err
	}
	c.FactionID = optional.FromNullInt64ToInteger[int32](factionID)
	c.LastLoginAt = optional.FromNullTime(lastLoginAt)
	if corpID.Valid {
		c.Corporation = &app.EveCorporation{
			ID:     int32(corpID.Int64),
			Name:   corpName.String,
			Ticker: corpTicker.String,
			IsNPC:  corpIsNPC.Bool,
		}
	}
	if allianceID.Valid {
		c.Alliance = &app.EveAlliance{
			ID:     int32(allianceID.Int64),
			Name:   allianceName.String,
			Ticker: allianceTick.String,
		}
	}
	return &c, nil
}
