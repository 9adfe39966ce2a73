package app

import (
	"time"

	"github.com/hraharahra/pathfinder/internal/optional"
)

// A Character is an Eve Online character registered with this installation.
//
// Corporation and Alliance are resolved from weak references in storage.
// A character without an alliance has a nil Alliance.
type Character struct {
	Active      bool
	Alliance    *EveAlliance
	Corporation *EveCorporation
	FactionID   optional.Optional[int32]
	FactionName string
	ID          int32
	LastLoginAt optional.Optional[time.Time]
	LogLocation bool
	Name        string
	OwnerHash   string
	Shared      bool
}

// HasCorporation reports whether a character belongs to a player corporation.
func (c *Character) HasCorporation() bool {
	return c.Corporation != nil
}

// HasAlliance reports whether a character belongs to an alliance.
func (c *Character) HasAlliance() bool {
	return c.Alliance != nil
}

// CharacterShort is a short representation of a Character.
type CharacterShort struct {
	ID   int32
	Name string
}

// A CharacterAuthentication is a revocable cookie based login for a character.
//
// All authentications of a character are destroyed on logout
// and when the character changes hands.
type CharacterAuthentication struct {
	CharacterID int32
	CreatedAt   time.Time
	ExpiresAt   time.Time
	ID          int64
	Selector    string
	Token       string
}

// IsExpired reports whether an authentication is no longer usable.
func (ca CharacterAuthentication) IsExpired() bool {
	return ca.ExpiresAt.Before(time.Now())
}

// A UserCharacter links a character to the user account owning it.
// A character has at most one link.
type UserCharacter struct {
	CharacterID int32
	ID          int64
	UserID      int64
}

// A CharacterLocation is the last known in-game location of a character.
//
// A row exists if and only if location logging is enabled for the character
// and the last successful sync reported a current location.
type CharacterLocation struct {
	CharacterID     int32
	ShipTypeID      optional.Optional[int32]
	SolarSystemID   int32
	SolarSystemName string
	StationID       optional.Optional[int32]
	StructureID     optional.Optional[int64]
	UpdatedAt       time.Time
}

// SyncResult is the outcome of a location log sync for one character.
type SyncResult uint

const (
	SyncResultUndefined SyncResult = iota
	SyncResultUpdated
	SyncResultUnchanged
	SyncResultSkipped
	SyncResultTransientFailure
)

func (sr SyncResult) String() string {
	m := map[SyncResult]string{
		SyncResultUpdated:          "updated",
		SyncResultUnchanged:        "unchanged",
		SyncResultSkipped:          "skipped",
		SyncResultTransientFailure: "transient failure",
	}
	s, ok := m[sr]
	if !ok {
		return "?"
	}
	return s
}
