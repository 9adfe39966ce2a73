package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/storage"
	"github.com/hraharahra/pathfinder/internal/app/storage/testutil"
)

func TestMaps(t *testing.T) {
	db, st, factory := testutil.NewDBInMemory()
	defer db.Close()
	ctx := context.Background()
	t.Run("can list character maps ordered by creation time", func(t *testing.T) {
		// given
		testutil.TruncateTables(db)
		c := factory.CreateCharacter()
		now := time.Now().UTC()
		m2 := factory.CreateMap(storage.CreateMapParams{Active: true, CreatedAt: now.Add(-time.Hour)})
		m1 := factory.CreateMap(storage.CreateMapParams{Active: true, CreatedAt: now.Add(-2 * time.Hour)})
		for _, m := range []*app.Map{m1, m2} {
			if err := st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
				t.Fatal(err)
			}
		}
		// when
		mm, err := st.ListCharacterMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 2) {
			assert.Equal(t, m1.ID, mm[0].ID)
			assert.Equal(t, m2.ID, mm[1].ID)
		}
	})
	t.Run("should not list inactive maps", func(t *testing.T) {
		// given
		testutil.TruncateTables(db)
		c := factory.CreateCharacter()
		m1 := factory.CreateMap(storage.CreateMapParams{Active: true})
		m2 := factory.CreateMap(storage.CreateMapParams{Active: false})
		for _, m := range []*app.Map{m1, m2} {
			if err := st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
				t.Fatal(err)
			}
		}
		// when
		mm, err := st.ListCharacterMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 1) {
			assert.Equal(t, m1.ID, mm[0].ID)
		}
	})
	t.Run("can list corporation maps", func(t *testing.T) {
		// given
		testutil.TruncateTables(db)
		corporation := factory.CreateEveCorporation()
		m := factory.CreateMap(storage.CreateMapParams{Active: true, Scope: app.MapScopeCorporation})
		if err := st.AddCorporationMap(ctx, corporation.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		// when
		mm, err := st.ListCorporationMaps(ctx, corporation.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 1) {
			assert.Equal(t, m.ID, mm[0].ID)
		}
	})
	t.Run("can list alliance maps", func(t *testing.T) {
		// given
		testutil.TruncateTables(db)
		alliance := factory.CreateEveAlliance()
		m := factory.CreateMap(storage.CreateMapParams{Active: true, Scope: app.MapScopeAlliance})
		if err := st.AddAllianceMap(ctx, alliance.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		// when
		mm, err := st.ListAllianceMaps(ctx, alliance.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 1) {
			assert.Equal(t, m.ID, mm[0].ID)
		}
	})
}
