package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/optional"
)

func (st *Storage) GetCharacterLocation(ctx context.Context, characterID int32) (*app.CharacterLocation, error) {
	var (
		o                           app.CharacterLocation
		stationN, structureN, shipN sql.NullInt64
	)
	row := st.db.QueryRowContext(
		ctx,
		`SELECT character_id, solar_system_id, solar_system_name, station_id, structure_id, ship_type_id, updated_at
		FROM character_locations WHERE character_id = ?`,
		characterID,
	)
	err := row.Scan(&o.CharacterID, &o.SolarSystemID, &o.SolarSystemName, &stationN, &structureN, &shipN, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get location for character %d: %w", characterID, convertGetError(err))
	}
	o.StationID = optional.FromNullInt64ToInteger[int32](stationN)
	o.StructureID = optional.FromNullInt64(structureN)
	o.ShipTypeID = optional.FromNullInt64ToInteger[int32](shipN)
	return &o, nil
}

type UpdateOrCreateCharacterLocationParams struct {
	CharacterID     int32
	ShipTypeID      optional.Optional[int32]
	SolarSystemID   int32
	SolarSystemName string
	StationID       optional.Optional[int32]
	StructureID     optional.Optional[int64]
	UpdatedAt       time.Time
}

func (st *Storage) UpdateOrCreateCharacterLocation(ctx context.Context, arg UpdateOrCreateCharacterLocationParams) error {
	if arg.CharacterID == 0 || arg.SolarSystemID == 0 {
		return fmt.Errorf("UpdateOrCreateCharacterLocation: %+v: %w", arg, app.ErrInvalid)
	}
	_, err := st.db.ExecContext(
		ctx,
		`INSERT INTO character_locations (
			character_id, solar_system_id, solar_system_name, station_id, structure_id, ship_type_id, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (character_id) DO UPDATE SET
			solar_system_id = excluded.solar_system_id,
			solar_system_name = excluded.solar_system_name,
			station_id = excluded.station_id,
			structure_id = excluded.structure_id,
			ship_type_id = excluded.ship_type_id,
			updated_at = excluded.updated_at`,
		arg.CharacterID,
		arg.SolarSystemID,
		arg.SolarSystemName,
		optional.ToNullInt64(arg.StationID),
		optional.ToNullInt64(arg.StructureID),
		optional.ToNullInt64(arg.ShipTypeID),
		arg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update or create location for character %d: %w", arg.CharacterID, err)
	}
	return nil
}

func (st *Storage) DeleteCharacterLocation(ctx context.Context, characterID int32) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM character_locations WHERE character_id = ?", characterID)
	if err != nil {
		return fmt.Errorf("delete location for character %d: %w", characterID, err)
	}
	return nil
}
