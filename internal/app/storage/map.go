package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
)

type CreateMapParams struct {
	Active    bool
	CreatedAt time.Time
	Name      string
	Scope     app.MapScope
}

func (st *Storage) CreateMap(ctx context.Context, arg CreateMapParams) (*app.Map, error) {
	wrapErr := func(err error) error {
		return fmt.Errorf("create map %s: %w", arg.Name, err)
	}
	if arg.Scope == "" {
		return nil, wrapErr(app.ErrInvalid)
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}
	r, err := st.db.ExecContext(
		ctx,
		"INSERT INTO maps (name, scope, active, created_at) VALUES (?, ?, ?, ?)",
		arg.Name, arg.Scope, arg.Active, arg.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return nil, wrapErr(err)
	}
	m := &app.Map{
		Active:    arg.Active,
		CreatedAt: arg.CreatedAt,
		ID:        id,
		Name:      arg.Name,
		Scope:     arg.Scope,
	}
	return m, nil
}

func (st *Storage) AddCharacterMap(ctx context.Context, characterID int32, mapID int64) error {
	_, err := st.db.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO character_maps (character_id, map_id) VALUES (?, ?)",
		characterID, mapID,
	)
	if err != nil {
		return fmt.Errorf("add map %d to character %d: %w", mapID, characterID, err)
	}
	return nil
}

func (st *Storage) AddCorporationMap(ctx context.Context, corporationID int32, mapID int64) error {
	_, err := st.db.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO corporation_maps (corporation_id, map_id) VALUES (?, ?)",
		corporationID, mapID,
	)
	if err != nil {
		return fmt.Errorf("add map %d to corporation %d: %w", mapID, corporationID, err)
	}
	return nil
}

func (st *Storage) AddAllianceMap(ctx context.Context, allianceID int32, mapID int64) error {
	_, err := st.db.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO alliance_maps (alliance_id, map_id) VALUES (?, ?)",
		allianceID, mapID,
	)
	if err != nil {
		return fmt.Errorf("add map %d to alliance %d: %w", mapID, allianceID, err)
	}
	return nil
}

// ListCharacterMaps returns a character's own active maps ordered by creation time.
func (st *Storage) ListCharacterMaps(ctx context.Context, characterID int32) ([]*app.Map, error) {
	return st.listMaps(
		ctx,
		`SELECT m.id, m.name, m.scope, m.active, m.created_at
		FROM maps m
		JOIN character_maps cm ON cm.map_id = m.id
		WHERE cm.character_id = ? AND m.active IS TRUE
		ORDER BY m.created_at`,
		fmt.Sprintf("character %d", characterID),
		characterID,
	)
}

// ListCorporationMaps returns a corporation's active maps ordered by creation time.
func (st *Storage) ListCorporationMaps(ctx context.Context, corporationID int32) ([]*app.Map, error) {
	return st.listMaps(
		ctx,
		`SELECT m.id, m.name, m.scope, m.active, m.created_at
		FROM maps m
		JOIN corporation_maps cm ON cm.map_id = m.id
		WHERE cm.corporation_id = ? AND m.active IS TRUE
		ORDER BY m.created_at`,
		fmt.Sprintf("corporation %d", corporationID),
		corporationID,
	)
}

// ListAllianceMaps returns an alliance's active maps ordered by creation time.
func (st *Storage) ListAllianceMaps(ctx context.Context, allianceID int32) ([]*app.Map, error) {
	return st.listMaps(
		ctx,
		`SELECT m.id, m.name, m.scope, m.active, m.created_at
		FROM maps m
		JOIN alliance_maps am ON am.map_id = m.id
		WHERE am.alliance_id = ? AND m.active IS TRUE
		ORDER BY m.created_at`,
		fmt.Sprintf("alliance %d", allianceID),
		allianceID,
	)
}

func (st *Storage) listMaps(ctx context.Context, query, owner string, args ...any) ([]*app.Map, error) {
	rows, err := st.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maps for %s: %w", owner, err)
	}
	defer rows.Close()
	mm := make([]*app.Map, 0)
	for rows.Next() {
		var m app.Map
		if err := rows.Scan(&m.ID, &m.Name, &m.Scope, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("list maps for %s: %w", owner, err)
		}
		mm = append(mm, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list maps for %s: %w", owner, err)
	}
	return mm, nil
}
