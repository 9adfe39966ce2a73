package app

import "time"

// CharacterData is the derived view of a character served to clients.
//
// It is not authoritative and can always be rebuilt from the character
// and its relations. Cached copies have no expiry and are destroyed
// whenever a contributing entity changes.
type CharacterData struct {
	Alliance    *AllianceData    `json:"alliance,omitempty"`
	Corporation *CorporationData `json:"corporation,omitempty"`
	ID          int32            `json:"id"`
	Log         *LocationData    `json:"log,omitempty"`
	LogLocation bool             `json:"logLocation"`
	Name        string           `json:"name"`
	Shared      bool             `json:"shared"`
}

// CorporationData is the derived view of a corporation reference.
type CorporationData struct {
	ID     int32  `json:"id"`
	IsNPC  bool   `json:"isNPC"`
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// AllianceData is the derived view of an alliance reference.
type AllianceData struct {
	ID     int32  `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// LocationData is the derived view of a character's location log.
type LocationData struct {
	ShipTypeID      int32     `json:"shipTypeId,omitempty"`
	SolarSystemID   int32     `json:"systemId"`
	SolarSystemName string    `json:"systemName"`
	StationID       int32     `json:"stationId,omitempty"`
	StructureID     int64     `json:"structureId,omitempty"`
	UpdatedAt       time.Time `json:"updated"`
}
