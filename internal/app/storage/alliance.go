package storage

import (
	"context"
	"fmt"

	"github.com/hraharahra/pathfinder/internal/app"
)

func upsertAlliance(ctx context.Context, db dbExecer, o *app.EveAlliance) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO alliances (id, name, ticker)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			ticker = excluded.ticker`,
		o.ID, o.Name, o.Ticker,
	)
	return err
}

func (st *Storage) UpdateOrCreateEveAlliance(ctx context.Context, o *app.EveAlliance) error {
	if o == nil || o.ID == 0 {
		return fmt.Errorf("UpdateOrCreateEveAlliance: %+v: %w", o, app.ErrInvalid)
	}
	if err := upsertAlliance(ctx, st.db, o); err != nil {
		return fmt.Errorf("update or create EveAlliance %d: %w", o.ID, err)
	}
	return nil
}

func (st *Storage) GetEveAlliance(ctx context.Context, allianceID int32) (*app.EveAlliance, error) {
	var o app.EveAlliance
	err := st.db.
		QueryRowContext(ctx, "SELECT id, name, ticker FROM alliances WHERE id = ?", allianceID).
		Scan(&o.ID, &o.Name, &o.Ticker)
	if err != nil {
		return nil, fmt.Errorf("get EveAlliance %d: %w", allianceID, convertGetError(err))
	}
	return &o, nil
}
