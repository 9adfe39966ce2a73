package eveonline_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/hraharahra/pathfinder/internal/app"
	"github.com/hraharahra/pathfinder/internal/eveonline"
)

const characterID = 95465499

func TestRefreshToken(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	c := eveonline.New("client-id", "", &http.Client{})
	ctx := context.Background()
	t.Run("should return new token pair", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"POST",
			"https://login.eveonline.com/v2/oauth/token",
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"access_token":  "access-fresh",
				"expires_in":    1199,
				"token_type":    "Bearer",
				"refresh_token": "refresh-fresh",
			}),
		)
		// when
		got, err := c.RefreshToken(ctx, "refresh-stale")
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "access-fresh", got.AccessToken)
			assert.Equal(t, "refresh-fresh", got.RefreshToken)
		}
	})
	t.Run("should return error when SSO reports one", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"POST",
			"https://login.eveonline.com/v2/oauth/token",
			httpmock.NewJsonResponderOrPanic(http.StatusBadRequest, map[string]any{
				"error":             "invalid_grant",
				"error_description": "Invalid refresh token",
			}),
		)
		// when
		_, err := c.RefreshToken(ctx, "refresh-revoked")
		// then
		assert.ErrorIs(t, err, eveonline.ErrTokenError)
	})
	t.Run("should return error when refresh token is empty", func(t *testing.T) {
		// when
		_, err := c.RefreshToken(ctx, "")
		// then
		assert.ErrorIs(t, err, app.ErrInvalid)
	})
}

func TestVerifyIdentity(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	c := eveonline.New("client-id", "", &http.Client{})
	ctx := context.Background()
	t.Run("should return matched identity", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://login.eveonline.com/oauth/verify",
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"CharacterID":        characterID,
				"CharacterName":      "CCP Bartender",
				"CharacterOwnerHash": "abc",
			}),
		)
		// when
		got, err := c.VerifyIdentity(ctx, "access-1")
		// then
		if assert.NoError(t, err) && assert.NotNil(t, got) {
			assert.Equal(t, int32(characterID), got.CharacterID)
			assert.Equal(t, "CCP Bartender", got.CharacterName)
			assert.Equal(t, "abc", got.OwnerHash)
		}
	})
	t.Run("should return no result when the token is rejected", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://login.eveonline.com/oauth/verify",
			httpmock.NewStringResponder(http.StatusUnauthorized, ""),
		)
		// when
		got, err := c.VerifyIdentity(ctx, "access-bogus")
		// then
		if assert.NoError(t, err) {
			assert.Nil(t, got)
		}
	})
	t.Run("should return error on an outage", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"https://login.eveonline.com/oauth/verify",
			httpmock.NewStringResponder(http.StatusBadGateway, ""),
		)
		// when
		_, err := c.VerifyIdentity(ctx, "access-1")
		// then
		assert.Error(t, err)
	})
}

func TestFetchProfile(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	c := eveonline.New("client-id", "", &http.Client{})
	ctx := context.Background()
	t.Run("should resolve corporation and alliance", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name":           "CCP Bartender",
				"corporation_id": 98000002,
				"alliance_id":    434243723,
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/corporations/98000002/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name":   "Wayne Tech",
				"ticker": "WYT",
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/alliances/434243723/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name":   "C C P Alliance",
				"ticker": "<C C P>",
			}),
		)
		// when
		p, err := c.FetchProfile(ctx, "access-1", characterID)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "CCP Bartender", p.Name)
			assert.Equal(t, int32(98000002), p.Corporation.ID)
			assert.Equal(t, "Wayne Tech", p.Corporation.Name)
			assert.False(t, p.Corporation.IsNPC)
			assert.Equal(t, int32(434243723), p.Alliance.ID)
			assert.Equal(t, "<C C P>", p.Alliance.Ticker)
		}
	})
	t.Run("should flag NPC corporation and omit missing alliance", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name":           "CCP Bartender",
				"corporation_id": 1000169,
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/corporations/1000169/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name":   "Center for Advanced Studies",
				"ticker": "CAS",
			}),
		)
		// when
		p, err := c.FetchProfile(ctx, "access-1", characterID)
		// then
		if assert.NoError(t, err) {
			assert.True(t, p.Corporation.IsNPC)
			assert.Nil(t, p.Alliance)
		}
	})
}

func TestFetchLocation(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	c := eveonline.New("client-id", "", &http.Client{})
	ctx := context.Background()
	t.Run("should return current location with system name and ship", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/location/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"solar_system_id": 30000142,
				"station_id":      60003760,
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/universe/systems/30000142/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name": "Jita",
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/ship/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"ship_type_id": 670,
			}),
		)
		// when
		r, err := c.FetchLocation(ctx, "access-1", characterID)
		// then
		if assert.NoError(t, err) && assert.NotNil(t, r.Location) {
			assert.False(t, r.TimedOut)
			assert.Equal(t, int32(30000142), r.Location.SolarSystemID)
			assert.Equal(t, "Jita", r.Location.SolarSystemName)
			assert.Equal(t, int32(60003760), r.Location.StationID)
			assert.Equal(t, int32(670), r.Location.ShipTypeID)
		}
	})
	t.Run("should tolerate a failing ship lookup", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/location/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"solar_system_id": 30000142,
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/universe/systems/30000142/$`,
			httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
				"name": "Jita",
			}),
		)
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/ship/$`,
			httpmock.NewStringResponder(http.StatusBadGateway, ""),
		)
		// when
		r, err := c.FetchLocation(ctx, "access-1", characterID)
		// then
		if assert.NoError(t, err) && assert.NotNil(t, r.Location) {
			assert.Equal(t, int32(30000142), r.Location.SolarSystemID)
			assert.Zero(t, r.Location.ShipTypeID)
		}
	})
	t.Run("should report a timed out query as data", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://esi\.evetech\.net/v\d+/characters/95465499/location/$`,
			httpmock.NewErrorResponder(context.DeadlineExceeded),
		)
		// when
		r, err := c.FetchLocation(ctx, "access-1", characterID)
		// then
		if assert.NoError(t, err) {
			assert.True(t, r.TimedOut)
			assert.Nil(t, r.Location)
		}
	})
}
