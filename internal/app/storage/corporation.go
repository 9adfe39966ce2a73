package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/hraharahra/pathfinder/internal/app"
)

// dbExecer is implemented by both sql.DB and sql.Tx.
type dbExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isUniqueViolation(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return true
		}
	}
	return false
}

func upsertCorporation(ctx context.Context, db dbExecer, o *app.EveCorporation) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO corporations (id, name, ticker, is_npc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			ticker = excluded.ticker,
			is_npc = excluded.is_npc`,
		o.ID, o.Name, o.Ticker, o.IsNPC,
	)
	return err
}

func (st *Storage) UpdateOrCreateEveCorporation(ctx context.Context, o *app.EveCorporation) error {
	if o == nil || o.ID == 0 {
		return fmt.Errorf("UpdateOrCreateEveCorporation: %+v: %w", o, app.ErrInvalid)
	}
	if err := upsertCorporation(ctx, st.db, o); err != nil {
		return fmt.Errorf("update or create EveCorporation %d: %w", o.ID, err)
	}
	return nil
}

func (st *Storage) GetEveCorporation(ctx context.Context, corporationID int32) (*app.EveCorporation, error) {
	var o app.EveCorporation
	err := st.db.
		QueryRowContext(ctx, "SELECT id, name, ticker, is_npc FROM corporations WHERE id = ?", corporationID).
		Scan(&o.ID, &o.Name, &o.Ticker, &o.IsNPC)
	if err != nil {
		return nil, fmt.Errorf("get EveCorporation %d: %w", corporationID, convertGetError(err))
	}
	return &o, nil
}
