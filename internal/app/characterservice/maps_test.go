package characterservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/app/characterservice"
	"github.com/hraharahra/pathfinder/internal/app/storage"
	"github.com/hraharahra/pathfinder/internal/app/storage/testutil"
	"github.com/hraharahra/pathfinder/internal/optional"
)

func TestAccessibleMaps(t *testing.T) {
	env := startService(&fakeIdentityClient{}, characterservice.Config{MaxPrivateMaps: 2})
	defer env.db.Close()
	ctx := context.Background()
	t.Run("should combine alliance, corporation and capped private maps", func(t *testing.T) {
		// given
		testutil.TruncateTables(env.db)
		c := env.factory.CreateCharacterFull()
		ma := env.factory.CreateMap(storage.CreateMapParams{Active: true, Scope: app.MapScopeAlliance})
		if err := env.st.AddAllianceMap(ctx, c.Alliance.ID, ma.ID); err != nil {
			t.Fatal(err)
		}
		mc := env.factory.CreateMap(storage.CreateMapParams{Active: true, Scope: app.MapScopeCorporation})
		if err := env.st.AddCorporationMap(ctx, c.Corporation.ID, mc.ID); err != nil {
			t.Fatal(err)
		}
		now := time.Now().UTC()
		private := make([]*app.Map, 0)
		for i := 0; i < 5; i++ {
			m := env.factory.CreateMap(storage.CreateMapParams{
				Active:    true,
				CreatedAt: now.Add(time.Duration(i-5) * time.Hour),
			})
			if err := env.st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
				t.Fatal(err)
			}
			private = append(private, m)
		}
		// when
		mm, err := env.s.AccessibleMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 4) {
			assert.Equal(t, ma.ID, mm[0].ID)
			assert.Equal(t, mc.ID, mm[1].ID)
			assert.Equal(t, private[0].ID, mm[2].ID)
			assert.Equal(t, private[1].ID, mm[3].ID)
		}
	})
	t.Run("should not count inactive maps against the private cap", func(t *testing.T) {
		// given
		testutil.TruncateTables(env.db)
		c := env.factory.CreateCharacter()
		now := time.Now().UTC()
		m1 := env.factory.CreateMap(storage.CreateMapParams{Active: false, CreatedAt: now.Add(-3 * time.Hour)})
		m2 := env.factory.CreateMap(storage.CreateMapParams{Active: true, CreatedAt: now.Add(-2 * time.Hour)})
		m3 := env.factory.CreateMap(storage.CreateMapParams{Active: true, CreatedAt: now.Add(-1 * time.Hour)})
		for _, m := range []*app.Map{m1, m2, m3} {
			if err := env.st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
				t.Fatal(err)
			}
		}
		// when
		mm, err := env.s.AccessibleMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 2) {
			assert.Equal(t, m2.ID, mm[0].ID)
			assert.Equal(t, m3.ID, mm[1].ID)
		}
	})
	t.Run("should list maps reachable through more than one source once per source", func(t *testing.T) {
		// given
		testutil.TruncateTables(env.db)
		corporation := env.factory.CreateEveCorporation()
		c := env.factory.CreateCharacter(storage.CreateCharacterParams{
			CorporationID: optional.New(corporation.ID),
		})
		m := env.factory.CreateMap(storage.CreateMapParams{Active: true, Scope: app.MapScopeCorporation})
		if err := env.st.AddCorporationMap(ctx, corporation.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		if err := env.st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		// when
		mm, err := env.s.AccessibleMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 2) {
			assert.Equal(t, m.ID, mm[0].ID)
			assert.Equal(t, m.ID, mm[1].ID)
		}
	})
	t.Run("should return private maps only for an unaffiliated character", func(t *testing.T) {
		// given
		testutil.TruncateTables(env.db)
		c := env.factory.CreateCharacter()
		m := env.factory.CreateMap()
		if err := env.st.AddCharacterMap(ctx, c.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		// when
		mm, err := env.s.AccessibleMaps(ctx, c.ID)
		// then
		if assert.NoError(t, err) && assert.Len(t, mm, 1) {
			assert.Equal(t, m.ID, mm[0].ID)
		}
	})
}
