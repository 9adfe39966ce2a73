package app

import "time"

// An EveCorporation is the corporation a character belongs to.
// Only the fields inspected by this application are stored.
type EveCorporation struct {
	ID     int32
	IsNPC  bool
	Name   string
	Ticker string
}

// An EveAlliance is the alliance a character's corporation belongs to.
type EveAlliance struct {
	ID     int32
	Name   string
	Ticker string
}

// MapScope defines who can access a map.
type MapScope string

const (
	MapScopePrivate     MapScope = "private"
	MapScopeCorporation MapScope = "corporation"
	MapScopeAlliance    MapScope = "alliance"
)

// A Map is a collection of systems and connections shared between characters.
type Map struct {
	Active    bool
	CreatedAt time.Time
	ID        int64
	Name      string
	Scope     MapScope
}
