// Package eveonline implements the identity provider contract against the
// Eve Online ESI and SSO APIs.
package eveonline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/antihax/goesi"

	"github.com/hraharahra/pathfinder/internal/app"
)

const (
	ssoHost          = "login.eveonline.com"
	tokenURLDefault  = "https://login.eveonline.com/v2/oauth/token"
	verifyURLDefault = "https://login.eveonline.com/oauth/verify"
)

// NPC corporations occupy a fixed ID range.
const (
	npcCorporationIDBegin = 1_000_000
	npcCorporationIDEnd   = 2_000_000
)

var ErrTokenError = errors.New("token error")

// Client talks to the Eve Online APIs on behalf of registered characters.
// It implements app.IdentityClient.
type Client struct {
	clientID   string
	esiClient  *goesi.APIClient
	httpClient *http.Client
	tokenURL   string
	verifyURL  string
}

// New returns a new client.
//
// All requests are made through the given HTTP client,
// which should handle retries for transient upstream errors.
func New(clientID, userAgent string, httpClient *http.Client) *Client {
	return &Client{
		clientID:   clientID,
		esiClient:  goesi.NewAPIClient(httpClient, userAgent),
		httpClient: httpClient,
		tokenURL:   tokenURLDefault,
		verifyURL:  verifyURLDefault,
	}
}

// token payload as returned from the SSO API
type tokenPayload struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int32  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	RefreshToken     string `json:"refresh_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RefreshToken exchanges a refresh token for a new token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*app.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token: %w", app.ErrInvalid)
	}
	form := url.Values{
		"client_id":     {c.clientID},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Host", ssoHost)
	slog.Debug("Requesting token from SSO API", "grant_type", form.Get("grant_type"), "url", c.tokenURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	token := tokenPayload{}
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, err
	}
	if token.Error != "" {
		return nil, fmt.Errorf("SSO refresh token: token payload has error: %s, %s: %w", token.Error, token.ErrorDescription, ErrTokenError)
	}
	return &app.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// verify payload as returned from the SSO API
type verifyPayload struct {
	CharacterID        int32  `json:"CharacterID"`
	CharacterName      string `json:"CharacterName"`
	CharacterOwnerHash string `json:"CharacterOwnerHash"`
}

// VerifyIdentity verifies an access token and returns the identity it
// belongs to. It returns nil without error when the SSO API rejects the
// token, so callers can distinguish an unmatched token from an outage.
func (c *Client) VerifyIdentity(ctx context.Context, accessToken string) (*app.IdentityVerification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.verifyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SSO verify: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	v := verifyPayload{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return &app.IdentityVerification{
		CharacterID:   v.CharacterID,
		CharacterName: v.CharacterName,
		OwnerHash:     v.CharacterOwnerHash,
	}, nil
}

// FetchProfile returns the current public profile of a character
// with its corporation and alliance resolved.
func (c *Client) FetchProfile(ctx context.Context, accessToken string, characterID int32) (*app.Profile, error) {
	ctx = context.WithValue(ctx, goesi.ContextAccessToken, accessToken)
	r, _, err := c.esiClient.ESI.CharacterApi.GetCharactersCharacterId(ctx, characterID, nil)
	if err != nil {
		return nil, err
	}
	p := &app.Profile{
		ID:   characterID,
		Name: r.Name,
	}
	if r.CorporationId != 0 {
		x, _, err := c.esiClient.ESI.CorporationApi.GetCorporationsCorporationId(ctx, r.CorporationId, nil)
		if err != nil {
			return nil, err
		}
		p.Corporation = &app.EveCorporation{
			ID:     r.CorporationId,
			IsNPC:  isNPCCorporation(r.CorporationId),
			Name:   x.Name,
			Ticker: x.Ticker,
		}
	}
	if r.AllianceId != 0 {
		x, _, err := c.esiClient.ESI.AllianceApi.GetAlliancesAllianceId(ctx, r.AllianceId, nil)
		if err != nil {
			return nil, err
		}
		p.Alliance = &app.EveAlliance{
			ID:     r.AllianceId,
			Name:   x.Name,
			Ticker: x.Ticker,
		}
	}
	return p, nil
}

// FetchLocation returns the current location of a character.
//
// A timed out query is reported as data, not as an error, because the
// caller must treat it differently from a character that is not in game.
func (c *Client) FetchLocation(ctx context.Context, accessToken string, characterID int32) (*app.LocationResult, error) {
	ctx = context.WithValue(ctx, goesi.ContextAccessToken, accessToken)
	r, _, err := c.esiClient.ESI.LocationApi.GetCharactersCharacterIdLocation(ctx, characterID, nil)
	if isTimeout(err) {
		return &app.LocationResult{TimedOut: true}, nil
	} else if err != nil {
		return nil, err
	}
	if r.SolarSystemId == 0 {
		return &app.LocationResult{}, nil
	}
	location := &app.Location{
		SolarSystemID: r.SolarSystemId,
		StationID:     r.StationId,
		StructureID:   r.StructureId,
	}
	system, _, err := c.esiClient.ESI.UniverseApi.GetUniverseSystemsSystemId(ctx, r.SolarSystemId, nil)
	if isTimeout(err) {
		return &app.LocationResult{TimedOut: true}, nil
	} else if err != nil {
		return nil, err
	}
	location.SolarSystemName = system.Name
	ship, _, err := c.esiClient.ESI.LocationApi.GetCharactersCharacterIdShip(ctx, characterID, nil)
	if err != nil {
		slog.Debug("Failed to fetch current ship", "characterID", characterID, "error", err)
	} else {
		location.ShipTypeID = ship.ShipTypeId
	}
	return &app.LocationResult{Location: location}, nil
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNPCCorporation(id int32) bool {
	return id >= npcCorporationIDBegin && id < npcCorporationIDEnd
}
