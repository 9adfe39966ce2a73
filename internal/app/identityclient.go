package app

import "context"

// IdentityVerification is the result of verifying an access token
// with the identity provider.
type IdentityVerification struct {
	CharacterID   int32
	CharacterName string
	OwnerHash     string
}

// Profile is the public character profile as reported by the identity provider.
// Corporation and alliance are nil when the character has none.
type Profile struct {
	Alliance    *EveAlliance
	Corporation *EveCorporation
	ID          int32
	Name        string
}

// Location is a current in-game location as reported by the identity provider.
type Location struct {
	ShipTypeID      int32
	SolarSystemID   int32
	SolarSystemName string
	StationID       int32
	StructureID     int64
}

// LocationResult is the outcome of a location query.
//
// A timed out call carries no location information and must be retried
// on a later cycle. A completed call with a nil location means the
// character is not in game, which is a regular result and not an error.
type LocationResult struct {
	Location *Location
	TimedOut bool
}

// IdentityClient is the contract of the external identity and data provider.
type IdentityClient interface {
	// RefreshToken exchanges a refresh token for a new token pair.
	RefreshToken(ctx context.Context, refreshToken string) (*Token, error)

	// VerifyIdentity verifies an access token and returns the identity it
	// belongs to. It returns nil without error when the token could not be
	// matched to a character.
	VerifyIdentity(ctx context.Context, accessToken string) (*IdentityVerification, error)

	// FetchProfile returns the current public profile of a character.
	FetchProfile(ctx context.Context, accessToken string, characterID int32) (*Profile, error)

	// FetchLocation returns the current location of a character.
	FetchLocation(ctx context.Context, accessToken string, characterID int32) (*LocationResult, error)
}
